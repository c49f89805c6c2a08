package explorer

// Focus selects which model insight a task demonstrates.
type Focus string

const (
	FocusOpportunities Focus = "opportunities"
	FocusLearningRate  Focus = "learning_rate"
	FocusDifficulty    Focus = "difficulty"
	FocusTransfer      Focus = "transfer"
	FocusAbility       Focus = "ability"
	FocusZPD           Focus = "zpd"
	FocusTooHard       Focus = "too_hard"
	FocusLimitation    Focus = "limitation"
)

// Task is one quiz item in the explorer. Tasks are reference data and are
// never mutated.
type Task struct {
	ID           int      `json:"id"`
	Concept      Concept  `json:"concept"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Code         string   `json:"code"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
	Focus        Focus    `json:"focus"`
	Explanation  string   `json:"-"`
}

const quicksortCode = `def quicksort(arr):
    if len(arr) <= 1:
        return arr
    pivot = arr[len(arr) // 2]
    left = [x for x in arr if x < pivot]
    middle = [x for x in arr if x == pivot]
    right = [x for x in arr if x > pivot]
    return quicksort(left) + middle + quicksort(right)

print(len(quicksort([3, 6, 8, 10, 1, 2, 1])))`

// taskCatalog is the fixed task sequence. Order matters: the explorer walks
// it front to back.
var taskCatalog = []Task{
	{
		ID:           1,
		Concept:      ConceptVariables,
		Title:        "Python Variables Basics",
		Description:  "Learn about variable assignment in Python",
		Code:         "x = 10\ny = \"Hello\"\nprint(x, y)",
		Question:     "What will this code output?",
		Options:      []string{"10 Hello", "10Hello", "x y", "Error"},
		CorrectIndex: 0,
		Focus:        FocusOpportunities,
		Explanation:  "This introduces basic variable concepts. Notice how your first attempt affects the model.",
	},
	{
		ID:           2,
		Concept:      ConceptVariables,
		Title:        "Variable Operations",
		Description:  "Practice with variable calculations",
		Code:         "a = 5\nb = 3\nresult = a * b + 2\nprint(result)",
		Question:     "What value will be printed?",
		Options:      []string{"17", "15", "13", "20"},
		CorrectIndex: 0,
		Focus:        FocusLearningRate,
		Explanation:  "Repeated practice with similar concepts increases your predicted success rate.",
	},
	{
		ID:           3,
		Concept:      ConceptLoops,
		Title:        "For Loop Introduction",
		Description:  "Understanding basic for loops",
		Code:         "for i in range(3):\n    print(i)",
		Question:     "How many numbers will be printed?",
		Options:      []string{"2", "3", "4", "1"},
		CorrectIndex: 1,
		Focus:        FocusDifficulty,
		Explanation:  "New concepts have different difficulty levels, affecting your initial success probability.",
	},
	{
		ID:           4,
		Concept:      ConceptLoops,
		Title:        "Loop with Variables",
		Description:  "Combining loops with variable concepts",
		Code:         "total = 0\nfor i in range(4):\n    total += i\nprint(total)",
		Question:     "What will be the final value of total?",
		Options:      []string{"6", "10", "4", "0"},
		CorrectIndex: 0,
		Focus:        FocusTransfer,
		Explanation:  "This combines multiple concepts. See how knowledge transfers between related skills.",
	},
	{
		ID:           5,
		Concept:      ConceptFunctions,
		Title:        "Function Definition",
		Description:  "Creating your first function",
		Code:         "def greet(name):\n    return f\"Hello, {name}!\"\n\nresult = greet(\"Alice\")\nprint(result)",
		Question:     "What will this code print?",
		Options:      []string{"Hello, Alice!", "Hello, name!", "greet(Alice)", "Error"},
		CorrectIndex: 0,
		Focus:        FocusAbility,
		Explanation:  "Functions are more complex. Your growing ability helps with harder concepts.",
	},
	{
		ID:           6,
		Concept:      ConceptZPDDemo,
		Title:        "ZPD Demonstration Task",
		Description:  "A task designed to be in your Zone of Proximal Development",
		Code:         "numbers = [1, 2, 3]\nfor num in numbers:\n    print(num * 2)",
		Question:     "What will this code print?",
		Options:      []string{"1 2 3", "2 4 6", "6", "Error"},
		CorrectIndex: 1,
		Focus:        FocusZPD,
		Explanation:  "This task is designed to be in your Zone of Proximal Development: challenging but achievable with your current skill level.",
	},
	{
		ID:           7,
		Concept:      ConceptTooHard,
		Title:        "Complex Algorithm Challenge",
		Description:  "A very challenging task that may require assistance",
		Code:         quicksortCode,
		Question:     "What will this recursive quicksort function output?",
		Options:      []string{"6", "7", "8", "Error"},
		CorrectIndex: 1,
		Focus:        FocusTooHard,
		Explanation:  "This task is above your current ZPD. You would likely benefit from scaffolding or assistance before attempting such complex algorithms.",
	},
	{
		ID:           8,
		Concept:      ConceptDataStructures,
		Title:        "Lists in Python",
		Description:  "Working with Python lists",
		Code:         "numbers = [1, 2, 3, 4]\nnumbers.append(5)\nprint(len(numbers))",
		Question:     "What will be printed?",
		Options:      []string{"4", "5", "6", "Error"},
		CorrectIndex: 1,
		Focus:        FocusLimitation,
		Explanation:  "Model limitation: it may overestimate success for completely new concept types.",
	},
}

// Tasks returns a copy of the task sequence.
func Tasks() []Task {
	out := make([]Task, len(taskCatalog))
	copy(out, taskCatalog)
	return out
}

// TaskCount is the number of tasks in a full explorer session.
func TaskCount() int {
	return len(taskCatalog)
}
