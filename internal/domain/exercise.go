package domain

// ExerciseCategory groups exercises in the library (e.g. "Push", "Pull",
// "Legs"). A category that is still referenced by exercises cannot be
// deleted; the service layer checks usage before removal.
type ExerciseCategory struct {
	ID          uint   `gorm:"column:category_id;primaryKey" json:"category_id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
}

func (ExerciseCategory) TableName() string { return "exercise_categories" }

// Exercise is a catalog entry in the shared exercise library. Identity is
// immutable; attributes are admin-editable. Referenced by workout
// prescriptions, logged sets and personal records.
type Exercise struct {
	ID              uint   `gorm:"column:exercise_id;primaryKey" json:"exercise_id"`
	Name            string `gorm:"not null" json:"name"`
	CategoryID      uint   `gorm:"not null;index" json:"category_id"`
	Description     string `json:"description,omitempty"`
	EquipmentNeeded string `json:"equipment_needed,omitempty"`
	MuscleGroup     string `json:"muscle_group,omitempty"`
	Instructions    string `json:"instructions,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	IsCompound      bool   `gorm:"not null;default:false" json:"is_compound"`
}

func (Exercise) TableName() string { return "exercises" }
