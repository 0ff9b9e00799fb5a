package editor

// Attribute is one displayable column.
type Attribute int

const (
	AttrID Attribute = iota
	AttrTitle
	AttrDuration
	AttrStartDate
	AttrFinishDate
	AttrCriticalPath
	AttrSlackWorkdays
	AttrSlackCalendarDays
	AttrPredecessors
	AttrSuccessors
	AttrCompletionStatus
	AttrResources
	AttrAttachments
	AttrComments
	AttrGanttChart

	numAttributes
)

// Format is a display format key. Keys are stored in editor state documents.
type Format string

const (
	FormatDefault Format = "default"

	FormatTitleOnly          Format = "task name only"
	FormatTitleParentGroup   Format = "task name and group"
	FormatTitleFullHierarchy Format = "task name and full group hiararchy"

	FormatDateLong        Format = "long date only"
	FormatDateLongWeekday Format = "long date with weekday"
	FormatDateISO         Format = "iso date only"
	FormatDateISOWeekday  Format = "iso date with weekday"

	FormatYesNo    Format = "yes/no"
	FormatRedGreen Format = "red/green"

	FormatRefsWithTitles Format = "references with titles"
	FormatRefsOnly       Format = "references only"

	FormatStatusText    Format = "completion status text"
	FormatStatusPercent Format = "completion status percent"
	FormatStatusSymbol  Format = "completion status symbol"

	FormatCommentTitles           Format = "comment titles"
	FormatCommentResponsibilities Format = "comment responsibilities"

	FormatGanttAutomatic Format = "automatic"
	FormatGanttDays      Format = "days"
	FormatGanttWeekdays  Format = "weekdays"
	FormatGanttWeeks     Format = "weeks"
	FormatGanttMonths    Format = "months"
	FormatGanttYears     Format = "years"
)

type Align string

const (
	AlignLeft   Align = ""
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type attributeSpec struct {
	key           string
	label         string
	width         int
	align         Align
	formats       []Format
	defaultFormat Format
}

var (
	formatsDefault = []Format{FormatDefault}
	formatsDate    = []Format{FormatDateLong, FormatDateLongWeekday, FormatDateISO, FormatDateISOWeekday}
	formatsRefs    = []Format{FormatRefsWithTitles, FormatRefsOnly}
)

var attributeSpecs = [numAttributes]attributeSpec{
	AttrID:                {key: "id", label: "ID", width: 50, align: AlignCenter, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrTitle:             {key: "title", label: "Title", width: 200, formats: []Format{FormatTitleOnly, FormatTitleParentGroup, FormatTitleFullHierarchy}, defaultFormat: FormatTitleOnly},
	AttrDuration:          {key: "duration", label: "Duration", width: 100, align: AlignCenter, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrStartDate:         {key: "start date", label: "Start", width: 100, align: AlignCenter, formats: formatsDate, defaultFormat: FormatDateISO},
	AttrFinishDate:        {key: "finish date", label: "Finish", width: 100, align: AlignCenter, formats: formatsDate, defaultFormat: FormatDateISO},
	AttrCriticalPath:      {key: "critical path", label: "Critical", width: 70, align: AlignCenter, formats: []Format{FormatRedGreen, FormatYesNo}, defaultFormat: FormatRedGreen},
	AttrSlackWorkdays:     {key: "slack (wd)", label: "Slack (wd)", width: 100, align: AlignCenter, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrSlackCalendarDays: {key: "slack (cd)", label: "Slack (cd)", width: 100, align: AlignCenter, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrPredecessors:      {key: "predecessors", label: "Predecessors", width: 150, formats: formatsRefs, defaultFormat: FormatRefsWithTitles},
	AttrSuccessors:        {key: "successors", label: "Successors", width: 150, formats: formatsRefs, defaultFormat: FormatRefsWithTitles},
	AttrCompletionStatus:  {key: "completion status", label: "Status", width: 70, align: AlignCenter, formats: []Format{FormatStatusText, FormatStatusPercent, FormatStatusSymbol}, defaultFormat: FormatStatusSymbol},
	AttrResources:         {key: "resources", label: "Resources", width: 150, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrAttachments:       {key: "attachments", label: "Attachments", width: 150, formats: formatsDefault, defaultFormat: FormatDefault},
	AttrComments:          {key: "comments", label: "Comments", width: 150, formats: []Format{FormatCommentTitles, FormatCommentResponsibilities}, defaultFormat: FormatCommentTitles},
	AttrGanttChart:        {key: "gantt chart", label: "Gantt Chart", width: 1000, formats: []Format{FormatGanttAutomatic, FormatGanttDays, FormatGanttWeekdays, FormatGanttWeeks, FormatGanttMonths, FormatGanttYears}, defaultFormat: FormatGanttAutomatic},
}

var defaultVisibleAttributes = []Attribute{
	AttrID,
	AttrCompletionStatus,
	AttrTitle,
	AttrDuration,
	AttrStartDate,
	AttrFinishDate,
	AttrPredecessors,
	AttrSuccessors,
	AttrResources,
	AttrAttachments,
	AttrComments,
	AttrGanttChart,
}

// Attributes returns every attribute in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, 0, numAttributes)
	for a := Attribute(0); a < numAttributes; a++ {
		out = append(out, a)
	}
	return out
}

func DefaultVisibleAttributes() []Attribute {
	return append([]Attribute(nil), defaultVisibleAttributes...)
}

func (a Attribute) Valid() bool { return a >= 0 && a < numAttributes }

func (a Attribute) Key() string {
	if !a.Valid() {
		return ""
	}
	return attributeSpecs[a].key
}

func (a Attribute) Label() string {
	if !a.Valid() {
		return ""
	}
	return attributeSpecs[a].label
}

func (a Attribute) String() string {
	if !a.Valid() {
		return "unknown attribute"
	}
	return a.Key()
}

func (a Attribute) DefaultWidth() int {
	if !a.Valid() {
		return 0
	}
	return attributeSpecs[a].width
}

func (a Attribute) DefaultAlign() Align {
	if !a.Valid() {
		return AlignLeft
	}
	return attributeSpecs[a].align
}

func (a Attribute) Formats() []Format {
	if !a.Valid() {
		return nil
	}
	return append([]Format(nil), attributeSpecs[a].formats...)
}

func (a Attribute) DefaultFormat() Format {
	if !a.Valid() {
		return ""
	}
	return attributeSpecs[a].defaultFormat
}

func (a Attribute) Supports(f Format) bool {
	if !a.Valid() {
		return false
	}
	for _, x := range attributeSpecs[a].formats {
		if x == f {
			return true
		}
	}
	return false
}

func ParseAttribute(key string) (Attribute, bool) {
	for a := Attribute(0); a < numAttributes; a++ {
		if attributeSpecs[a].key == key {
			return a, true
		}
	}
	return 0, false
}
