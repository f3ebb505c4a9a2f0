package extractor

// Keyword tables driving the rule engine. The verb tables enumerate the
// surface forms a lemmatizer would collapse, so matching stays a plain
// map lookup per token.

// drugVerbs mark a medication mention: "was given Aspirin", "started taking ibuprofen".
var drugVerbs = map[string]bool{
	"take": true, "takes": true, "taking": true, "took": true, "taken": true,
	"give": true, "gives": true, "giving": true, "gave": true, "given": true,
	"administer": true, "administers": true, "administering": true, "administered": true,
	"start": true, "starts": true, "starting": true, "started": true,
	"stop": true, "stops": true, "stopping": true, "stopped": true,
}

// symptomVerbs introduce adverse-event mentions: "experienced severe headaches".
var symptomVerbs = map[string]bool{
	"experience": true, "experiences": true, "experiencing": true, "experienced": true,
	"have": true, "has": true, "having": true, "had": true,
	"suffer": true, "suffers": true, "suffering": true, "suffered": true,
	"feel": true, "feels": true, "feeling": true, "felt": true,
	"be": true, "is": true, "are": true, "was": true, "were": true, "been": true, "being": true,
	"develop": true, "develops": true, "developing": true, "developed": true,
	"get": true, "gets": true, "getting": true, "got": true, "gotten": true,
}

// severityAdjectives qualify a symptom; the matched adjective becomes the
// severity label verbatim (lowercased).
var severityAdjectives = map[string]bool{
	"severe":           true,
	"critical":         true,
	"life-threatening": true,
	"moderate":         true,
	"serious":          true,
	"mild":             true,
	"slight":           true,
	"painful":          true,
	"bad":              true,
}

// outcomeLabels maps resolution keywords to their canonical outcome label.
// The first keyword found in token order wins.
var outcomeLabels = map[string]string{
	"recover": "Recovered", "recovers": "Recovered", "recovering": "Recovered", "recovered": "Recovered",
	"resolve": "Recovered", "resolves": "Recovered", "resolving": "Recovered", "resolved": "Recovered",
	"improve": "Improved", "improves": "Improved", "improving": "Improved", "improved": "Improved",
	"better": "Improved",
	"ongoing": "Ongoing",
	"persist": "Ongoing", "persists": "Ongoing", "persisting": "Ongoing", "persisted": "Ongoing",
	"continue": "Ongoing", "continues": "Ongoing", "continuing": "Ongoing", "continued": "Ongoing",
	"die": "Fatal", "dies": "Fatal", "dying": "Fatal", "died": "Fatal",
}

// nounStoplist filters generic nouns that symptom verbs attract but that are
// never adverse events themselves.
var nounStoplist = map[string]bool{
	"patient": true,
	"day":     true,
	"week":    true,
	"morning": true,
	"time":    true,
	"moving":  true,
}

// functionWords are skipped when scanning for drug names and symptoms.
var functionWords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true, "these": true, "those": true,
	"his": true, "her": true, "their": true, "its": true, "my": true, "our": true, "your": true,
	"he": true, "she": true, "it": true, "they": true, "we": true, "i": true, "you": true,
	"him": true, "them": true, "me": true, "us": true,
	"and": true, "or": true, "but": true, "also": true, "then": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true, "with": true,
	"by": true, "from": true, "after": true, "before": true, "during": true, "since": true,
	"not": true, "no": true, "very": true, "some": true, "any": true, "still": true, "now": true,
	"again": true, "all": true, "both": true, "each": true, "when": true, "while": true,
	"into": true, "over": true, "about": true, "than": true,
}
