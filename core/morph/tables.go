package morph

// Latin follows the Latin Dependency Treebank 1.5 guidelines. 'r' is
// strictly an adposition but is reported as "preposition".
var latin = NewTable("latin", []string{"la", "lat"}, map[Category]map[rune]string{
	POS: {
		'n': "noun", 'v': "verb", 'a': "adjective",
		'd': "adverb", 'c': "conjunction", 'r': "preposition",
		'p': "pronoun", 'm': "numeral", 'i': "interjection",
		'e': "exclamation", 'u': "punctuation",
	},
	Person: {'1': "first", '2': "second", '3': "third"},
	Number: {'s': "singular", 'p': "plural"},
	Tense: {
		'p': "present", 'i': "imperfect", 'r': "perfect", 'l': "pluperfect",
		't': "future perfect", 'f': "future",
	},
	Mood: {
		'i': "indicative", 's': "subjunctive", 'n': "infinitive",
		'm': "imperative", 'd': "gerund", 'g': "gerundive", 'p': "participle",
	},
	Voice:  {'a': "active", 'p': "passive", 'd': "deponent"},
	Gender: {'m': "masculine", 'f': "feminine", 'n': "neuter"},
	Case: {
		'n': "nominative", 'g': "genitive", 'd': "dative", 'a': "accusative",
		'b': "ablative", 'v': "vocative", 'l': "locative",
	},
	Degree: {'p': "positive", 'c': "comparative", 's': "superlative"},
})

// Greek follows the Ancient Greek Dependency Treebank 2.0 tagset.
var greek = NewTable("greek", []string{"grc", "gr"}, map[Category]map[rune]string{
	POS: {
		'n': "noun", 'v': "verb", 't': "participle", 'a': "adjective",
		'd': "adverb", 'l': "article", 'g': "particle", 'c': "conjunction",
		'r': "preposition", 'p': "pronoun", 'm': "numeral",
		'i': "interjection", 'e': "exclamation", 'u': "punctuation",
		'x': "irregular",
	},
	Person: {'1': "first", '2': "second", '3': "third"},
	Number: {'s': "singular", 'p': "plural", 'd': "dual"},
	Tense: {
		'p': "present", 'i': "imperfect", 'r': "perfect", 'l': "pluperfect",
		't': "future perfect", 'f': "future", 'a': "aorist",
	},
	Mood: {
		'i': "indicative", 's': "subjunctive", 'o': "optative",
		'n': "infinitive", 'm': "imperative", 'p': "participle",
	},
	Voice:  {'a': "active", 'p': "passive", 'm': "middle", 'e': "mediopassive"},
	Gender: {'m': "masculine", 'f': "feminine", 'n': "neuter"},
	Case: {
		'n': "nominative", 'g': "genitive", 'd': "dative", 'a': "accusative",
		'v': "vocative", 'l': "locative",
	},
	Degree: {'p': "positive", 'c': "comparative", 's': "superlative"},
})

// Latin returns the Latin feature table.
func Latin() *Table { return latin }

// Greek returns the Ancient Greek feature table.
func Greek() *Table { return greek }
