package chat

import "strings"

// FallbackRule answers a message locally when generation is unavailable
type FallbackRule struct {
	Topic    string
	Keywords []string
	Reply    string
}

// FallbackRules are checked in order; the first rule with a keyword contained
// in the message wins
var FallbackRules = []FallbackRule{
	{
		Topic:    "fir",
		Keywords: []string{"fir", "police complaint", "police station"},
		Reply: "<b>Filing an FIR:</b> for a cognizable offence the police are bound to register an FIR at any police station, whatever the place of the offence (a Zero FIR). " +
			"If the station refuses, you may send the complaint in writing to the Superintendent of Police or approach the Magistrate. " +
			"The Document Generator can draft a police complaint for you.",
	},
	{
		Topic:    "bail",
		Keywords: []string{"bail", "arrest", "arrested"},
		Reply: "<b>Bail:</b> for bailable offences bail is a matter of right and may be granted by the police or the court. " +
			"For non-bailable offences an application is made to the Magistrate or Sessions Court, and anticipatory bail may be sought from the Sessions Court or High Court before arrest. " +
			"The Document Generator includes a bail application template.",
	},
	{
		Topic:    "rti",
		Keywords: []string{"rti", "right to information"},
		Reply: "<b>Right to Information:</b> an application under the RTI Act, 2005 goes to the Public Information Officer of the department with the prescribed fee. " +
			"A reply is due within 30 days, and a first appeal lies to the appellate authority in the same department. " +
			"The Document Generator includes an RTI application template.",
	},
	{
		Topic:    "property",
		Keywords: []string{"property", "land", "boundary", "tenant", "landlord", "rent"},
		Reply: "<b>Property disputes:</b> start by collecting title documents, the sale deed and revenue records, and send a legal notice to the other party. " +
			"Civil suits for possession, injunction or declaration are filed in the civil court with territorial jurisdiction over the property. " +
			"Mediation through the Legal Services Authority is often quicker.",
	},
	{
		Topic:    "consumer",
		Keywords: []string{"consumer", "refund", "defective", "seller", "warranty"},
		Reply: "<b>Consumer complaints:</b> under the Consumer Protection Act, 2019 you may file with the District Commission where you reside or work, including online through e-Daakhil. " +
			"Send the seller a written notice first and keep the invoice and all correspondence.",
	},
	{
		Topic:    "employment",
		Keywords: []string{"employer", "employment", "terminated", "salary", "wages", "dismissed"},
		Reply: "<b>Employment issues:</b> check your appointment letter for notice and termination terms. " +
			"Unpaid wages and wrongful termination of workmen can be raised before the Labour Commissioner, while other employees may send a legal notice and file a civil suit for damages.",
	},
	{
		Topic:    "divorce",
		Keywords: []string{"divorce", "maintenance", "custody of child", "alimony"},
		Reply: "<b>Divorce:</b> a mutual consent divorce is filed jointly before the Family Court after at least one year of separation. " +
			"The court records statements on the first motion and the second motion follows after a cooling-off period that the court may waive.",
	},
}

// Fallback returns the canned reply for text, or false when no rule matches
func Fallback(text string) (string, bool) {
	words := tokenize(text)
	lower := strings.ToLower(text)
	for _, rule := range FallbackRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					return rule.Reply, true
				}
				continue
			}
			if words[kw] {
				return rule.Reply, true
			}
		}
	}
	return "", false
}

// tokenize splits text into lower-cased words so short keywords like "fir"
// do not match inside "confirm"
func tokenize(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		words[w] = true
	}
	return words
}
