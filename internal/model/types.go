package model

// LogRecord is one raw submission from the logs file, keyed by log id.
type LogRecord struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Metadata  LogMetadata `json:"metadata"`
}

type LogMetadata struct {
	UserID         string `json:"user_id"`
	InputMethod    string `json:"input_method"`
	Timestamp      string `json:"timestamp"`
	FileName       string `json:"file_name,omitempty"`
	ContentPreview string `json:"content_preview,omitempty"`
}

const (
	InputMethodVoice = "voice"
	InputMethodText  = "text"
)

// ProfileRecord is a stored profile as it appears in the profiles file.
type ProfileRecord struct {
	Metadata ProfileMetadata `json:"metadata"`
}

type ProfileMetadata struct {
	UserID        string   `json:"userId"`
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	ActivityLevel string   `json:"activity_level"`
	Name          string   `json:"name"`
}

// Profile is the normalized shape the calculators consume.
type Profile struct {
	UserID        string   `json:"user_id"`
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	ActivityLevel string   `json:"activity_level"`
	Name          string   `json:"name"`
}

// WeightKg returns the profile weight, falling back to 70kg when the
// profile omits it or carries a non-positive value.
func (p Profile) WeightKg() float64 {
	if p.Weight != nil && *p.Weight > 0 {
		return *p.Weight
	}
	return 70.0
}

// Item is one entry of a proposed log: a food or exercise item, before or
// after enrichment. Clone must return an independent copy.
type Item interface {
	Clone() Item
}

type FoodItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (f FoodItem) Clone() Item { return f }

type ExerciseItem struct {
	Activity    string  `json:"activity"`
	DurationMin float64 `json:"duration_min"`
	EffortLevel string  `json:"effort_level"`
}

func (e ExerciseItem) Clone() Item { return e }

// Macros holds the canonical macro-nutrient set for one food item.
type Macros struct {
	Calories float64 `json:"calories"`
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg float64 `json:"sodium_mg"`
}

// SourceRef records which provider supplied a food match. ID is the vendor
// identifier of the matched candidate and null when no candidate exists.
type SourceRef struct {
	Provider string `json:"provider"`
	ID       any    `json:"id"`
}

// EnrichedFoodItem is a food item with macros attached. Macros stays null
// when the provider returned no candidates.
type EnrichedFoodItem struct {
	FoodItem
	Macros    *Macros   `json:"macros"`
	SourceRef SourceRef `json:"source_ref"`
}

func (e EnrichedFoodItem) Clone() Item {
	out := e
	if e.Macros != nil {
		m := *e.Macros
		out.Macros = &m
	}
	return out
}

// EnrichedExerciseItem is an exercise item with the computed MET and
// calorie estimate attached.
type EnrichedExerciseItem struct {
	ExerciseItem
	MET            float64 `json:"met"`
	CaloriesBurned float64 `json:"calories_burned"`
}

func (e EnrichedExerciseItem) Clone() Item { return e }

const (
	LogTypeFood     = "food"
	LogTypeExercise = "exercise"
)

// ProposedLog is one typed batch of items extracted from a transcript.
type ProposedLog struct {
	Type             string  `json:"type"`
	Items            []Item  `json:"items"`
	ParserConfidence float64 `json:"parser_confidence"`
}

func (l ProposedLog) Clone() ProposedLog {
	out := l
	out.Items = make([]Item, len(l.Items))
	for i, it := range l.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

type PayloadMetadata struct {
	UserID      string `json:"user_id"`
	Timestamp   string `json:"timestamp"`
	InputMethod string `json:"input_method"`
	ID          string `json:"id"`
	FileName    string `json:"file_name,omitempty"`
	Transcript  string `json:"transcript"`
}

// Payload is the unit the enrichment orchestrator transforms.
type Payload struct {
	Metadata     PayloadMetadata `json:"metadata"`
	ProposedLogs []ProposedLog   `json:"proposed_logs"`
}

// Clone returns a structural deep copy, so enrichment never aliases the
// caller's payload.
func (p Payload) Clone() Payload {
	out := p
	out.ProposedLogs = make([]ProposedLog, len(p.ProposedLogs))
	for i, l := range p.ProposedLogs {
		out.ProposedLogs[i] = l.Clone()
	}
	return out
}

// ParsedEntities is the entity pipeline's response shape.
type ParsedEntities struct {
	Food     ParsedFood     `json:"food"`
	Exercise ParsedExercise `json:"exercise"`
}

type ParsedFood struct {
	Items []FoodItem `json:"items"`
}

type ParsedExercise struct {
	Items []ExerciseItem `json:"items"`
}
