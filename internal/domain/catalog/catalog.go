package catalog

import "strings"

// Category is a named group of trigger phrases sharing a manipulation
// tactic, with the severity weight it contributes to the risk score and the
// presentation data the highlight projector needs. Categories are immutable
// after process start and shared read-only by scoring and highlighting.
type Category struct {
	Name        string   `json:"name"`
	Phrases     []string `json:"phrases"`
	Weight      int      `json:"weight"`
	Color       string   `json:"color"`
	Tooltip     string   `json:"tooltip"`
	Explanation string   `json:"explanation"`
	Advice      string   `json:"advice"`
}

// Flag is a boolean signal computed outside the phrase matcher (sender
// domain classification, page-derived checks). It has no phrase list.
type Flag struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Explanation string `json:"explanation"`
	Advice      string `json:"advice"`
}

// Category and flag names. Stable keys: the scorer emits them in
// detected_patterns and the projector resolves them back.
const (
	PaymentRequest      = "Payment Request"
	UrgencyManipulation = "Urgency Manipulation"
	OffPlatform         = "Off-Platform Communication"
	UnrealisticPromises = "Unrealistic Job Promises"
	PaymentInstructions = "Payment Instructions"
	PagePromises        = "Unrealistic Promises"

	FreeEmailDomain = "Free Email Domain"
	PoorFormatting  = "Poor Grammar / Unusual Formatting"
	NoHTTPS         = "No HTTPS"
	NewDomain       = "New Domain"
	NoContactInfo   = "No Contact Info"
	DomainMismatch  = "Domain Mismatch"
)

// messageCategories is the phrase taxonomy for the message and email
// channels. One table feeds both the scorer and the highlight projector so
// the two surfaces cannot drift apart.
var messageCategories = []Category{
	{
		Name:        PaymentRequest,
		Weight:      50,
		Phrases:     []string{"payment", "fee", "charge", "cost", "send money", "pay", "ksh", "kes"},
		Color:       "#d32f2f",
		Tooltip:     "Asks you to pay — legitimate employers never charge applicants",
		Explanation: "requests payment, which legitimate employers never do",
		Advice:      "Never send money for a job application or offer.",
	},
	{
		Name:        UrgencyManipulation,
		Weight:      25,
		Phrases:     []string{"urgent", "immediately", "now", "limited time", "act fast"},
		Color:       "#f57c00",
		Tooltip:     "Pressures you to act before you can think it through",
		Explanation: "pressures you to act quickly",
		Advice:      "Take your time to evaluate any job offer. High-pressure tactics are suspicious.",
	},
	{
		Name:        OffPlatform,
		Weight:      30,
		Phrases:     []string{"whatsapp", "telegram"},
		Color:       "#7b1fa2",
		Tooltip:     "Moves the conversation off the platform's safety features",
		Explanation: "tries to move the conversation to a personal messaging app",
		Advice:      "Keep communication on official platforms (e.g. LinkedIn, company email).",
	},
	{
		Name:        UnrealisticPromises,
		Weight:      35,
		Phrases:     []string{"guaranteed income", "high salary", "no experience needed", "work from home"},
		Color:       "#c2185b",
		Tooltip:     "Promises that sound too good to be true usually are",
		Explanation: "makes unrealistic promises about pay or requirements",
		Advice:      "Research typical salaries and requirements for the role you are applying for.",
	},
}

// linkCategories are the phrase categories matched against fetched page text.
var linkCategories = []Category{
	{
		Name:        PaymentInstructions,
		Weight:      40,
		Phrases:     []string{"payment", "fee", "charge", "cost", "send money", "ksh", "kes"},
		Color:       "#d32f2f",
		Tooltip:     "The page instructs visitors to make a payment",
		Explanation: "contains payment instructions, which legitimate job sites do not",
		Advice:      "Do not make any payments for job applications or training.",
	},
	{
		Name:        PagePromises,
		Weight:      35,
		Phrases:     []string{"guaranteed income", "high salary", "no experience needed", "work from home"},
		Color:       "#c2185b",
		Tooltip:     "The page makes unrealistic promises about salary or requirements",
		Explanation: "makes unrealistic promises about salary or job requirements",
		Advice:      "If a job offer sounds too good to be true, it probably is.",
	},
}

// flags are the boolean signals injected pre-weighted by the extractors.
var flags = map[string]Flag{
	FreeEmailDomain: {
		Name:        FreeEmailDomain,
		Weight:      40,
		Explanation: "was sent from a free email provider, which is uncommon for legitimate companies",
		Advice:      "Verify the sender's email address against the company's official domain.",
	},
	PoorFormatting: {
		Name:        PoorFormatting,
		Weight:      15,
		Explanation: "contains grammatical errors or unusual formatting",
		Advice:      "Read emails carefully and be wary of unprofessional communication.",
	},
	NoHTTPS: {
		Name:        NoHTTPS,
		Weight:      20,
		Explanation: "does not use HTTPS, a basic security measure",
		Advice:      "Avoid entering personal information on unencrypted websites.",
	},
	NewDomain: {
		Name:        NewDomain,
		Weight:      30,
		Explanation: "uses a very recently registered domain",
		Advice:      "Be cautious with new websites, especially ones asking for personal information or payment.",
	},
	NoContactInfo: {
		Name:        NoContactInfo,
		Weight:      25,
		Explanation: "provides no clear contact information",
		Advice:      "Legitimate companies provide multiple ways to contact them.",
	},
	DomainMismatch: {
		Name:        DomainMismatch,
		Weight:      25,
		Explanation: "advertises a company name that does not match its domain",
		Advice:      "Check that the website domain matches the company it claims to represent.",
	},
}

// freeMailProviders is the fixed provider set used by the email channel.
var freeMailProviders = map[string]struct{}{
	"gmail.com":   {},
	"yahoo.com":   {},
	"outlook.com": {},
	"hotmail.com": {},
	"aol.com":     {},
}

// MessageCategories returns the phrase categories for the message and email
// channels.
func MessageCategories() []Category {
	return messageCategories
}

// LinkCategories returns the phrase categories matched against fetched page
// text.
func LinkCategories() []Category {
	return linkCategories
}

// AllCategories returns every phrase category across channels.
func AllCategories() []Category {
	out := make([]Category, 0, len(messageCategories)+len(linkCategories))
	out = append(out, messageCategories...)
	out = append(out, linkCategories...)
	return out
}

// CategoryByName resolves a category by its stable name.
func CategoryByName(name string) (Category, bool) {
	for _, c := range AllCategories() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// AllFlags returns every boolean flag in a stable order.
func AllFlags() []Flag {
	names := []string{FreeEmailDomain, PoorFormatting, NoHTTPS, NewDomain, NoContactInfo, DomainMismatch}
	out := make([]Flag, 0, len(names))
	for _, name := range names {
		out = append(out, flags[name])
	}
	return out
}

// FlagByName resolves a boolean flag by its stable name.
func FlagByName(name string) (Flag, bool) {
	f, ok := flags[name]
	return f, ok
}

// IsFreeMailProvider reports whether domain belongs to the fixed
// free-mail-provider set.
func IsFreeMailProvider(domain string) bool {
	_, ok := freeMailProviders[strings.ToLower(domain)]
	return ok
}
