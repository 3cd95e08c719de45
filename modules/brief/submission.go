package brief

type Stage string

const (
	StageIdea       Stage = "idea"
	StagePrototype  Stage = "prototype"
	StageProduction Stage = "production"
	StageResearch   Stage = "research"
)

func AllStages() []Stage {
	return []Stage{StageIdea, StagePrototype, StageProduction, StageResearch}
}

type Timeline string

const (
	TimelineUrgent Timeline = "urgent"
	TimelineShort  Timeline = "short"
	TimelineMedium Timeline = "medium"
	TimelineLong   Timeline = "long"
)

func AllTimelines() []Timeline {
	return []Timeline{TimelineUrgent, TimelineShort, TimelineMedium, TimelineLong}
}

type DataAvailability string

const (
	DataAvailable   DataAvailability = "have-data"
	DataNeeded      DataAvailability = "need-data"
	DataUnavailable DataAvailability = "no-data"
)

func AllDataAvailability() []DataAvailability {
	return []DataAvailability{DataAvailable, DataNeeded, DataUnavailable}
}

type EngagementModel string

const (
	EngagementHourly           EngagementModel = "hourly"
	EngagementCommissionHourly EngagementModel = "commission-hourly"
	EngagementEquityCommission EngagementModel = "equity-commission"
)

func AllEngagementModels() []EngagementModel {
	return []EngagementModel{EngagementHourly, EngagementCommissionHourly, EngagementEquityCommission}
}

type BudgetRange string

const (
	BudgetUnder5k  BudgetRange = "under-5k"
	Budget5to10k   BudgetRange = "5k-10k"
	Budget10to25k  BudgetRange = "10k-25k"
	Budget25to50k  BudgetRange = "25k-50k"
	Budget50to100k BudgetRange = "50k-100k"
	BudgetOver100k BudgetRange = "100k+"
)

func AllBudgetRanges() []BudgetRange {
	return []BudgetRange{BudgetUnder5k, Budget5to10k, Budget10to25k, Budget25to50k, Budget50to100k, BudgetOver100k}
}

// Labels used in emails and the wizard UI.
var (
	stageLabels = map[Stage]string{
		StageIdea:       "Idea",
		StagePrototype:  "Prototype",
		StageProduction: "In production",
		StageResearch:   "Research",
	}
	timelineLabels = map[Timeline]string{
		TimelineUrgent: "Urgent (< 2 weeks)",
		TimelineShort:  "Short (2-6 weeks)",
		TimelineMedium: "Medium (1-3 months)",
		TimelineLong:   "Long (3+ months)",
	}
	dataLabels = map[DataAvailability]string{
		DataAvailable:   "Has data",
		DataNeeded:      "Needs help collecting data",
		DataUnavailable: "No data yet",
	}
	engagementLabels = map[EngagementModel]string{
		EngagementHourly:           "Hourly",
		EngagementCommissionHourly: "Commission + hourly",
		EngagementEquityCommission: "Equity + commission",
	}
	budgetLabels = map[BudgetRange]string{
		BudgetUnder5k:  "Under $5k",
		Budget5to10k:   "$5k - $10k",
		Budget10to25k:  "$10k - $25k",
		Budget25to50k:  "$25k - $50k",
		Budget50to100k: "$50k - $100k",
		BudgetOver100k: "$100k+",
	}
)

func label[K ~string](m map[K]string, k K) string {
	if l, ok := m[k]; ok {
		return l
	}
	return string(k)
}

func (s Stage) Label() string            { return label(stageLabels, s) }
func (t Timeline) Label() string         { return label(timelineLabels, t) }
func (d DataAvailability) Label() string { return label(dataLabels, d) }
func (e EngagementModel) Label() string  { return label(engagementLabels, e) }
func (b BudgetRange) Label() string      { return label(budgetLabels, b) }

func (s Stage) Valid() bool            { _, ok := stageLabels[s]; return ok }
func (t Timeline) Valid() bool         { _, ok := timelineLabels[t]; return ok }
func (d DataAvailability) Valid() bool { _, ok := dataLabels[d]; return ok }
func (e EngagementModel) Valid() bool  { _, ok := engagementLabels[e]; return ok }
func (b BudgetRange) Valid() bool      { _, ok := budgetLabels[b]; return ok }

type Contact struct {
	Name    string
	Email   string
	Company string
}

type Project struct {
	Description string
	Stage       Stage
	Timeline    Timeline
}

type Technical struct {
	DataAvailability     DataAvailability
	ExpectedDeliverables string
}

type Engagement struct {
	Model       EngagementModel
	BudgetRange BudgetRange
}

// Submission is one project brief as collected by the wizard.
type Submission struct {
	Contact    Contact
	Project    Project
	Technical  Technical
	Engagement Engagement
}

// Payload is the flattened wire form of a Submission.
type Payload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Company              string `json:"company"`
	ProjectDescription   string `json:"projectDescription"`
	Stage                string `json:"stage"`
	Timeline             string `json:"timeline"`
	DataAvailability     string `json:"dataAvailability"`
	ExpectedDeliverables string `json:"expectedDeliverables"`
	EngagementModel      string `json:"engagementModel"`
	BudgetRange          string `json:"budgetRange"`
	// Website is a honeypot: the field is hidden from humans.
	Website string `json:"website,omitempty"`
}

func (s Submission) Payload() Payload {
	return Payload{
		Name:                 s.Contact.Name,
		Email:                s.Contact.Email,
		Company:              s.Contact.Company,
		ProjectDescription:   s.Project.Description,
		Stage:                string(s.Project.Stage),
		Timeline:             string(s.Project.Timeline),
		DataAvailability:     string(s.Technical.DataAvailability),
		ExpectedDeliverables: s.Technical.ExpectedDeliverables,
		EngagementModel:      string(s.Engagement.Model),
		BudgetRange:          string(s.Engagement.BudgetRange),
	}
}

func (p Payload) Submission() Submission {
	return Submission{
		Contact: Contact{Name: p.Name, Email: p.Email, Company: p.Company},
		Project: Project{
			Description: p.ProjectDescription,
			Stage:       Stage(p.Stage),
			Timeline:    Timeline(p.Timeline),
		},
		Technical: Technical{
			DataAvailability:     DataAvailability(p.DataAvailability),
			ExpectedDeliverables: p.ExpectedDeliverables,
		},
		Engagement: Engagement{
			Model:       EngagementModel(p.EngagementModel),
			BudgetRange: BudgetRange(p.BudgetRange),
		},
	}
}
