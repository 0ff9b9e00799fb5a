package model

// Ids are assigned by the project stores. The editor never allocates them.
const (
	RootGroupID = 0
	InvalidID   = -1
)

type EntityKind int

const (
	KindTask EntityKind = iota
	KindGroup
)

func (k EntityKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// EntityRef identifies a task or a group. Task and group ids live in separate spaces.
type EntityRef struct {
	ID   int        `json:"id" yaml:"id"`
	Kind EntityKind `json:"kind" yaml:"kind"`
}

func TaskRef(id int) EntityRef  { return EntityRef{ID: id, Kind: KindTask} }
func GroupRef(id int) EntityRef { return EntityRef{ID: id, Kind: KindGroup} }

// InfoKey names one field of an entity information dictionary.
type InfoKey string

// Task information keys.
const (
	InfoReference         InfoKey = "reference"
	InfoTitle             InfoKey = "title"
	InfoSchedulingMode    InfoKey = "scheduling mode"
	InfoFixedStartDate    InfoKey = "fixed start date"
	InfoDurationValue     InfoKey = "duration value"
	InfoDurationUnits     InfoKey = "duration units"
	InfoActualStart       InfoKey = "actual start"
	InfoActualFinish      InfoKey = "actual finish"
	InfoEarlyStart        InfoKey = "early start"
	InfoEarlyFinish       InfoKey = "early finish"
	InfoLateStart         InfoKey = "late start"
	InfoLateFinish        InfoKey = "late finish"
	InfoSlackWorkdays     InfoKey = "slack workdays"
	InfoSlackCalendarDays InfoKey = "slack calendar days"
	InfoIsMilestone       InfoKey = "is milestone"
	InfoIsOnCriticalPath  InfoKey = "is on critical path"
	InfoCompletionStatus  InfoKey = "completion status"
	InfoTextColor         InfoKey = "text color"
	InfoBackgroundColor   InfoKey = "background color"
	InfoTextStyle         InfoKey = "text style"
	InfoAttachments       InfoKey = "attachments"
	InfoComments          InfoKey = "comments"
	InfoResources         InfoKey = "resources"
	InfoLinkedTasks       InfoKey = "linked tasks"
	InfoAny               InfoKey = "any"
)

// Group information keys. Title, colors, style and InfoAny are shared with tasks.
const (
	InfoCompletionValue InfoKey = "completion value"
	InfoParentGroupID   InfoKey = "parent group id"
)

// Info is the key to string dictionary the stores return for an entity.
type Info map[InfoKey]string

func (i Info) Get(k InfoKey) string {
	if i == nil {
		return ""
	}
	return i[k]
}

const (
	Yes = "yes"
	No  = "no"
)

// Completion status values.
const (
	StatusNotStarted = "not started"
	StatusStarted    = "started"
	StatusCompleted  = "completed"
)

// Text styles.
const (
	StyleNormal      = "normal"
	StyleBold        = "bold"
	StyleItalics     = "italics"
	StyleBoldItalics = "bold italics"
)

type LinkType string

const (
	LinkFinishToStart  LinkType = "finish to start"
	LinkFinishToFinish LinkType = "finish to finish"
	LinkStartToFinish  LinkType = "start to finish"
	LinkStartToStart   LinkType = "start to start"
)

// Member is one ordered child of a group: exactly one of Task/Group is set.
type Member struct {
	Task  int `json:"task,omitempty" yaml:"task,omitempty"`
	Group int `json:"group,omitempty" yaml:"group,omitempty"`
}

func (m Member) Ref() EntityRef {
	if m.Group != 0 {
		return GroupRef(m.Group)
	}
	return TaskRef(m.Task)
}

func MemberOf(ref EntityRef) Member {
	if ref.Kind == KindGroup {
		return Member{Group: ref.ID}
	}
	return Member{Task: ref.ID}
}

type Task struct {
	ID            int    `json:"id" yaml:"id"`
	Reference     string `json:"reference,omitempty" yaml:"reference,omitempty"`
	Title         string `json:"title" yaml:"title"`
	DurationValue string `json:"durationValue,omitempty" yaml:"duration_value,omitempty"`
	DurationUnits string `json:"durationUnits,omitempty" yaml:"duration_units,omitempty"`

	// SchedulingMode is "automatic" (default) or "fixed start".
	SchedulingMode string `json:"schedulingMode,omitempty" yaml:"scheduling_mode,omitempty"`
	FixedStart     string `json:"fixedStart,omitempty" yaml:"fixed_start,omitempty"`

	// Dates are ISO (yyyy-mm-dd).
	ActualStart  string `json:"actualStart,omitempty" yaml:"actual_start,omitempty"`
	ActualFinish string `json:"actualFinish,omitempty" yaml:"actual_finish,omitempty"`
	EarlyStart   string `json:"earlyStart,omitempty" yaml:"early_start,omitempty"`
	EarlyFinish  string `json:"earlyFinish,omitempty" yaml:"early_finish,omitempty"`
	LateStart    string `json:"lateStart,omitempty" yaml:"late_start,omitempty"`
	LateFinish   string `json:"lateFinish,omitempty" yaml:"late_finish,omitempty"`

	SlackWorkdays     string `json:"slackWorkdays,omitempty" yaml:"slack_workdays,omitempty"`
	SlackCalendarDays string `json:"slackCalendarDays,omitempty" yaml:"slack_calendar_days,omitempty"`
	Milestone         bool   `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Critical          bool   `json:"critical,omitempty" yaml:"critical,omitempty"`
	Status            string `json:"status,omitempty" yaml:"status,omitempty"`

	TextStyle       string `json:"textStyle,omitempty" yaml:"text_style,omitempty"`
	TextColor       string `json:"textColor,omitempty" yaml:"text_color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`

	Resources []int `json:"resources,omitempty" yaml:"resources,omitempty"`
}

type Group struct {
	ID              int      `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	CompletionValue string   `json:"completionValue,omitempty" yaml:"completion_value,omitempty"`
	TextStyle       string   `json:"textStyle,omitempty" yaml:"text_style,omitempty"`
	TextColor       string   `json:"textColor,omitempty" yaml:"text_color,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`
	Members         []Member `json:"members,omitempty" yaml:"members,omitempty"`
}

type Link struct {
	Predecessor int      `json:"predecessor" yaml:"predecessor"`
	Successor   int      `json:"successor" yaml:"successor"`
	Type        LinkType `json:"type,omitempty" yaml:"type,omitempty"`
	Lag         int      `json:"lag,omitempty" yaml:"lag,omitempty"`
	LagUnits    string   `json:"lagUnits,omitempty" yaml:"lag_units,omitempty"`
}

type Resource struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Comment struct {
	ID    int    `json:"id" yaml:"id"`
	Task  int    `json:"task" yaml:"task"`
	Title string `json:"title" yaml:"title"`
	// Body is markdown.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
	// Mentions are resource ids responsible for the comment.
	Mentions []int `json:"mentions,omitempty" yaml:"mentions,omitempty"`
}

type Attachment struct {
	ID   int    `json:"id" yaml:"id"`
	Task int    `json:"task" yaml:"task"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

type Holiday struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

// Project is the on-disk project document.
type Project struct {
	Name        string       `json:"name" yaml:"name"`
	Members     []Member     `json:"members,omitempty" yaml:"members,omitempty"`
	Tasks       []Task       `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Groups      []Group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Links       []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Resources   []Resource   `json:"resources,omitempty" yaml:"resources,omitempty"`
	Comments    []Comment    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Holidays    []Holiday    `json:"holidays,omitempty" yaml:"holidays,omitempty"`
}
