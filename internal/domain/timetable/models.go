package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Weekday is a day of the school week
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays returns the school days in grid order
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// IsValid reports whether d is one of the fixed school days
func (d Weekday) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	}
	return false
}

// Index returns the position of d in grid order, or -1 for an unknown day
func (d Weekday) Index() int {
	for i, day := range Weekdays() {
		if day == d {
			return i
		}
	}
	return -1
}

const (
	FirstPeriod = 1
	LastPeriod  = 8
)

// Periods returns the period numbers of one school day in grid order
func Periods() []int {
	periods := make([]int, 0, LastPeriod-FirstPeriod+1)
	for p := FirstPeriod; p <= LastPeriod; p++ {
		periods = append(periods, p)
	}
	return periods
}

// CellKey identifies one cell of a weekly grid. Structured on purpose:
// staged edits and merges key on this value, never on joined strings.
type CellKey struct {
	Day    Weekday `json:"day"`
	Period int     `json:"period"`
}

// Before reports whether k precedes other in day-then-period grid order
func (k CellKey) Before(other CellKey) bool {
	if k.Day.Index() != other.Day.Index() {
		return k.Day.Index() < other.Day.Index()
	}
	return k.Period < other.Period
}

// Teacher represents a teacher in the roster
type Teacher struct {
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ScheduleSlot assigns a teacher to one cell of a grade/section's weekly
// grid. Cell uniqueness within a grade/section is maintained by the
// partial-update flow, not by a database constraint.
type ScheduleSlot struct {
	SlotID    uuid.UUID `json:"slot_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TeacherID uuid.UUID `json:"teacher_id" gorm:"type:uuid;not null"`
	Grade     int       `json:"grade" gorm:"not null"`
	Section   int       `json:"section" gorm:"not null"`
	Day       Weekday   `json:"day" gorm:"type:text;not null"`
	Period    int       `json:"period" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Cell returns the grid cell this slot occupies
func (s *ScheduleSlot) Cell() CellKey {
	return CellKey{Day: s.Day, Period: s.Period}
}

// GradeSectionConfig stores the ordered section numbers of one grade as
// a serialized JSON list
type GradeSectionConfig struct {
	ConfigID  uuid.UUID      `json:"config_id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Grade     int            `json:"grade" gorm:"unique;not null"`
	Sections  datatypes.JSON `json:"sections" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// SectionList deserializes the stored section numbers
func (c *GradeSectionConfig) SectionList() ([]int, error) {
	var sections []int
	if err := json.Unmarshal(c.Sections, &sections); err != nil {
		return nil, fmt.Errorf("invalid sections encoding for grade %d: %w", c.Grade, err)
	}
	return sections, nil
}

// SetSectionList serializes sections into the stored representation
func (c *GradeSectionConfig) SetSectionList(sections []int) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections for grade %d: %w", c.Grade, err)
	}
	c.Sections = datatypes.JSON(raw)
	return nil
}

// Conflict reports a teacher double-booked at one cell; Descriptions
// names each colliding teacher and grade/section
type Conflict struct {
	Day          Weekday  `json:"day"`
	Period       int      `json:"period"`
	Descriptions []string `json:"descriptions"`
}

// ConflictError is returned when a save is blocked by double-bookings
type ConflictError struct {
	Conflicts []Conflict `json:"conflicts"`
}

func (e *ConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("schedule has %d conflicting cell(s)", len(e.Conflicts))
}

// SlotChange is one staged cell edit; an empty TeacherID clears the cell
type SlotChange struct {
	Day       Weekday `json:"day" validate:"required"`
	Period    int     `json:"period" validate:"required,gte=1,lte=8"`
	TeacherID string  `json:"teacher_id" validate:"omitempty,uuid"`
}

// Request DTOs

// CreateTeacherRequest represents a request to add a teacher
type CreateTeacherRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Subject string `json:"subject" validate:"required,min=1,max=100"`
}

// UpdateTeacherRequest represents a partial teacher update
type UpdateTeacherRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Subject *string `json:"subject,omitempty" validate:"omitempty,min=1,max=100"`
}

// CreateSlotRequest represents a request to create a single slot
type CreateSlotRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	Grade     int       `json:"grade" validate:"required,gte=1"`
	Section   int       `json:"section" validate:"required,gte=1"`
	Day       Weekday   `json:"day" validate:"required"`
	Period    int       `json:"period" validate:"required,gte=1,lte=8"`
}

// UpdateSlotRequest represents a partial slot update
type UpdateSlotRequest struct {
	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
	Day       *Weekday   `json:"day,omitempty"`
	Period    *int       `json:"period,omitempty" validate:"omitempty,gte=1,lte=8"`
}

// PartialUpdateRequest carries the staged edits for one grade/section
type PartialUpdateRequest struct {
	Slots     []SlotChange `json:"slots" validate:"dive"`
	IsPartial bool         `json:"is_partial"`
}

// PartialUpdateResult is the outcome of a partial-update save
type PartialUpdateResult struct {
	NoChanges bool            `json:"no_changes"`
	Slots     []*ScheduleSlot `json:"slots"`
}

// NewTeacher creates a teacher with a generated ID and timestamps
func NewTeacher(name, subject string) *Teacher {
	now := time.Now()
	return &Teacher{
		TeacherID: uuid.New(),
		Name:      name,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
