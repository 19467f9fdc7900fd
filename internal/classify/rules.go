package classify

// Category is the display label attached to a classified message.
type Category string

// The fixed category set. Labels carry their emoji prefix because they
// are rendered verbatim into notification payloads.
const (
	CategoryBanking       Category = "💰 Banking / Payments"
	CategoryOffers        Category = "🧾 Offers / Details"
	CategoryApplications  Category = "💼 Job Applications"
	CategoryAssessments   Category = "🧪 Assessments / Tests"
	CategoryInterviews    Category = "🗓️ Interviews / Events"
	CategorySecurity      Category = "🔒 Security / Account"
	CategorySubscriptions Category = "📬 Subscriptions / News"
	CategoryRejections    Category = "🧮 Rejections"
	CategoryMisc          Category = "🪪 Misc / General"
)

// Rule pairs a category with the lowercase keywords that select it.
type Rule struct {
	Category Category
	Keywords []string
}

// rules is the priority-ordered rule table. Earlier entries win when a
// subject matches more than one rule.
var rules = []Rule{
	{CategoryBanking, []string{"invoice", "payment", "balance", "credit", "icici", "mab"}},
	{CategoryOffers, []string{"offer", "details"}},
	{CategoryApplications, []string{"application", "applied", "submission", "recruit", "careers", "applying"}},
	{CategoryAssessments, []string{"assessment", "coding", "test", "codesignal", "hackerrank"}},
	{CategoryInterviews, []string{"interview", "invite", "session", "meeting", "event", "call"}},
	{CategorySecurity, []string{"security", "password", "verify", "account", "login", "unauthorized"}},
	{CategorySubscriptions, []string{"digest", "newsletter", "updates", "substack", "thread"}},
	{CategoryRejections, []string{"unfortunately", "decline", "rejected", "not moving forward", "another candidate"}},
}

// Rules returns a copy of the rule table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
