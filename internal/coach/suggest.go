package coach

import "github.com/abhisek/afmlab/internal/afm"

func offlineSuggestion(in Input) string {
	switch in.Zone {
	case afm.TooHard:
		if in.Page == PageSimulator {
			return "Lower β or add practice to bring the prediction above 40%."
		}
		return "Practice an easier concept first; each opportunity raises the prediction."
	case afm.TooEasy:
		if in.Page == PageSimulator {
			return "Raise β to give this student a harder task."
		}
		return "This concept is well learned; a harder one would be more useful now."
	default:
		return "This is a good level of challenge. Keep practicing here."
	}
}
