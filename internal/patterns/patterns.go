// Package patterns holds the shared regular expressions and keyword tables
// used by the field extractors. Pure data, no logic.
package patterns

import "regexp"

// EmailRegex matches email-shaped substrings anywhere in text.
var EmailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// GenericMailboxes are mailbox prefixes excluded from email extraction.
var GenericMailboxes = []string{"info@", "admin@", "support@", "noreply@"}

// PhonePatterns are the phone-shape patterns whose matches are unioned
// before normalization.
var PhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
	regexp.MustCompile(`\b1[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
}

// CompanySuffixes are the legal-entity suffixes that anchor the
// highest-confidence company-name rule.
var CompanySuffixes = []string{
	"LLC", "L\\.L\\.C\\.", "Inc", "Incorporated", "Corp", "Corporation",
	"Co", "Company", "Ltd", "Limited", "LLP", "LP", "Enterprises",
	"Construction", "Contractors", "Contracting", "Services", "Electric",
	"Electrical", "Plumbing", "Mechanical", "Builders", "Group",
}

// AddressHints are street-type words used to reject address lines as
// company-name candidates.
var AddressHints = []string{
	"street", "st", "avenue", "ave", "road", "rd", "drive", "dr", "lane",
	"ln", "boulevard", "blvd", "suite", "ste", "court", "ct", "circle",
	"highway", "hwy", "parkway", "pkwy", "way", "place", "pl",
}

// CompanyLineBlacklist rejects lines that look like document boilerplate
// rather than a company name.
var CompanyLineBlacklist = []string{
	"proposal", "estimate", "quote", "invoice", "bid form", "scope of work",
	"total", "subtotal", "page", "date:", "phone:", "fax:", "email:",
	"www.", "http",
}

// NameBlacklist rejects contact-name candidates containing business words.
var NameBlacklist = []string{
	"project", "estimate", "phone", "email", "fax", "contact", "company",
	"address", "date", "proposal", "total", "price", "scope", "work",
	"bill", "ship", "from", "attn",
}

// TradeMapping associates a canonical trade with the keywords that imply it.
type TradeMapping struct {
	Trade    string
	Keywords []string
}

// TradeMappings is ordered: earlier entries win keyword ties within a rule.
var TradeMappings = []TradeMapping{
	{Trade: "Electrical", Keywords: []string{"electrical", "electric", "wiring", "lighting", "conduit", "panel", "switchgear"}},
	{Trade: "Plumbing", Keywords: []string{"plumbing", "piping", "fixtures", "water heater", "drainage", "sewer"}},
	{Trade: "HVAC", Keywords: []string{"hvac", "heating", "ventilation", "air conditioning", "ductwork", "mechanical"}},
	{Trade: "Concrete", Keywords: []string{"concrete", "foundation", "slab", "footing", "rebar", "cement"}},
	{Trade: "Sitework", Keywords: []string{"sitework", "grading", "site work", "earthwork", "utilities"}},
	{Trade: "Excavation", Keywords: []string{"excavation", "excavating", "trenching", "backfill"}},
	{Trade: "Low Voltage", Keywords: []string{"low voltage", "cabling", "data cabling", "structured cabling", "fiber optic", "security system"}},
	{Trade: "Roofing", Keywords: []string{"roofing", "roof", "shingle", "membrane", "flashing"}},
	{Trade: "Demolition", Keywords: []string{"demolition", "demo", "abatement"}},
	{Trade: "Paving", Keywords: []string{"paving", "asphalt", "striping"}},
	{Trade: "Landscaping", Keywords: []string{"landscaping", "landscape", "irrigation", "sod"}},
	{Trade: "Fire Protection", Keywords: []string{"fire protection", "sprinkler", "fire alarm", "fire suppression"}},
	{Trade: "Steel", Keywords: []string{"structural steel", "steel erection", "metal fabrication", "welding"}},
	{Trade: "Carpentry", Keywords: []string{"carpentry", "framing", "millwork", "casework", "trim"}},
	{Trade: "Drywall", Keywords: []string{"drywall", "gypsum", "sheetrock", "taping"}},
	{Trade: "Masonry", Keywords: []string{"masonry", "brick", "block", "stone", "mortar"}},
}

// TradeSubjectPatterns locate trade keywords inside subject-style lines.
var TradeSubjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:re|subject|regarding|project):\s*[^:\n]*?(electrical|plumbing|concrete|hvac|mechanical|sitework|excavation|cabling|low voltage)[^:\n]*`),
	regexp.MustCompile(`(?i)proposal\s+(?:for\s+)?([^:\n]*?(?:electrical|plumbing|concrete|hvac|mechanical|sitework|excavation|cabling)[^:\n]*)`),
}

// ScopeOfWorkRegex captures the scope-of-work line plus up to three
// following lines.
var ScopeOfWorkRegex = regexp.MustCompile(`(?i)scope\s+of\s+work[:\s]*([^\n]+(?:\n[^\n]+){0,3})`)

// ZipRegex matches a US zip code, used by the address guard.
var ZipRegex = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
