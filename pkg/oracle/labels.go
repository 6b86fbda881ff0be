package oracle

// FallbackLabels are the fixed generic categories used when no taxonomy is
// configured or the content matches no taxonomy entry.
var FallbackLabels = []string{"TOOLING", "FEATURE", "BUGFIX", "META", "OFF-PRIORITY"}

// CatchAllLabel receives turns the classifier left unaccounted for.
const CatchAllLabel = "UNCLEAR"
