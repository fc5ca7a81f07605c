package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrPlanNotFound     = errors.New("workout plan not found or access denied")
	ErrPlanIsTemplate   = errors.New("template plans cannot be modified")
	ErrTemplateNotFound = errors.New("template plan not found")
	ErrWorkoutNotFound  = errors.New("workout not found or access denied")
	ErrLogNotFound      = errors.New("workout log not found or access denied")
)

// --- Inputs ---

// PlanInput is the full plan tree as submitted by the client. The client
// always sends the complete current tree; entries absent from the
// submission are deleted during reconciliation.
type PlanInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description,omitempty"`
	Frequency   string         `json:"frequency" binding:"required"`
	Goal        string         `json:"goal,omitempty"`
	Workouts    []WorkoutInput `json:"workouts,omitempty"`
}

// WorkoutInput is one workout inside a plan submission. A nil or unknown
// WorkoutID means "insert as new".
type WorkoutInput struct {
	WorkoutID   *uint                  `json:"workout_id,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	DayOfWeek   *int                   `json:"day_of_week,omitempty"`
	Exercises   []WorkoutExerciseInput `json:"exercises,omitempty"`
}

// WorkoutExerciseInput is one prescription inside a workout submission.
type WorkoutExerciseInput struct {
	WorkoutExerciseID *uint  `json:"workout_exercise_id,omitempty"`
	ExerciseID        uint   `json:"exercise_id"`
	Sets              int    `json:"sets"`
	Reps              *int   `json:"reps,omitempty"`
	RestPeriod        *int   `json:"rest_period,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// LogWorkoutInput is a completed session to persist.
type LogWorkoutInput struct {
	WorkoutID   uint                  `json:"workout_id"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Duration    *int                  `json:"duration,omitempty"`
	Notes       string                `json:"notes,omitempty"`
	Rating      *int                  `json:"rating,omitempty"`
	Exercises   []LoggedExerciseInput `json:"exercises,omitempty"`
}

// LoggedExerciseInput carries the performed sets of one exercise.
type LoggedExerciseInput struct {
	ExerciseID uint       `json:"exercise_id"`
	Notes      string     `json:"notes,omitempty"`
	Sets       []SetInput `json:"sets"`
}

// SetInput is one performed set. IsPR asks for a personal-record check;
// the check only runs when both weight and reps are present.
type SetInput struct {
	Reps   *int     `json:"reps,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	IsPR   bool     `json:"is_pr,omitempty"`
}

// WorkoutService owns the plan aggregate and the session log. Logging a
// workout and mutating a plan are each a single all-or-nothing
// transaction.
type WorkoutService interface {
	// Plans
	GetPlans(ctx context.Context, userID uint) (*PlanListView, error)
	GetPlanDetails(ctx context.Context, userID, planID uint) (*WorkoutPlanView, error)
	CreatePlan(ctx context.Context, userID uint, input PlanInput) (*WorkoutPlanView, error)
	UpdatePlan(ctx context.Context, userID, planID uint, input PlanInput) (*WorkoutPlanView, error)
	DeletePlan(ctx context.Context, userID, planID uint) error
	CopyTemplate(ctx context.Context, userID, templateID uint) (*WorkoutPlanView, error)
	TodaysWorkout(ctx context.Context, userID uint) (*TodayView, error)

	// Logs
	LogWorkout(ctx context.Context, userID uint, input LogWorkoutInput) (*WorkoutLogView, error)
	GetLogDetails(ctx context.Context, userID, logID uint) (*WorkoutLogView, error)
	GetLogs(ctx context.Context, userID uint, limit, offset int) (*LogListView, error)
	DeleteLog(ctx context.Context, userID, logID uint) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	planRepo     repository.PlanRepository
	logRepo      repository.WorkoutLogRepository
	recordRepo   repository.RecordRepository
	exerciseRepo repository.ExerciseRepository
	records      RecordService
	tx           repository.TxManager
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	planRepo repository.PlanRepository,
	logRepo repository.WorkoutLogRepository,
	recordRepo repository.RecordRepository,
	exerciseRepo repository.ExerciseRepository,
	records RecordService,
	tx repository.TxManager,
) WorkoutService {
	return &workoutService{
		planRepo:     planRepo,
		logRepo:      logRepo,
		recordRepo:   recordRepo,
		exerciseRepo: exerciseRepo,
		records:      records,
		tx:           tx,
	}
}

// === Workout logging ===

// LogWorkout persists one completed session: the header, every set and
// any personal records it produced, as a single atomic unit. Failed PR
// checks never block the log itself; a dominated candidate simply
// produces no record row.
func (s *workoutService) LogWorkout(ctx context.Context, userID uint, input LogWorkoutInput) (*WorkoutLogView, error) {
	if input.WorkoutID == 0 {
		return nil, fmt.Errorf("%w: workout ID is required", ErrValidationFailed)
	}
	for _, entry := range input.Exercises {
		if entry.ExerciseID == 0 || len(entry.Sets) == 0 {
			return nil, fmt.Errorf("%w: exercise ID and sets are required", ErrValidationFailed)
		}
	}

	// The workout must be reachable by the user before any write begins.
	if _, err := s.visibleWorkout(ctx, userID, input.WorkoutID); err != nil {
		return nil, err
	}

	// Every referenced exercise must exist before any set is written.
	if err := s.requireExercises(ctx, exerciseIDsOfInput(input.Exercises)); err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	logRow := &domain.WorkoutLog{
		UserID:      userID,
		WorkoutID:   input.WorkoutID,
		CompletedAt: completedAt,
		Duration:    input.Duration,
		Notes:       input.Notes,
		Rating:      input.Rating,
	}

	var newRecords []domain.PersonalRecord
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.logRepo.CreateLog(ctx, logRow); err != nil {
			return err
		}
		for _, entry := range input.Exercises {
			for i, set := range entry.Sets {
				el := &domain.ExerciseLog{
					LogID:      logRow.ID,
					ExerciseID: entry.ExerciseID,
					SetNumber:  i + 1,
					Reps:       set.Reps,
					Weight:     set.Weight,
					Notes:      set.Notes,
				}
				if _, err := s.logRepo.CreateExerciseLog(ctx, el); err != nil {
					return err
				}

				if !set.IsPR || set.Weight == nil || set.Reps == nil {
					continue
				}
				// Evaluation runs inside the same transaction, so it sees
				// records written earlier in this call.
				eval, err := s.records.Evaluate(ctx, userID, entry.ExerciseID, *set.Weight, *set.Reps)
				if err != nil {
					return err
				}
				if !eval.IsNewRecord {
					continue
				}
				record := &domain.PersonalRecord{
					UserID:     userID,
					ExerciseID: entry.ExerciseID,
					Weight:     *set.Weight,
					Reps:       *set.Reps,
					AchievedAt: completedAt,
					Notes:      entry.Notes,
				}
				if _, err := s.recordRepo.Create(ctx, record); err != nil {
					return err
				}
				newRecords = append(newRecords, *record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildLogView(ctx, logRow, newRecords)
}

// GetLogDetails returns one session owned by the user.
func (s *workoutService) GetLogDetails(ctx context.Context, userID, logID uint) (*WorkoutLogView, error) {
	logRow, err := s.logRepo.GetLog(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return s.buildLogView(ctx, logRow, nil)
}

// GetLogs returns a page of workout history, newest first.
func (s *workoutService) GetLogs(ctx context.Context, userID uint, limit, offset int) (*LogListView, error) {
	if limit <= 0 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := s.logRepo.ListLogs(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.logRepo.CountLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	workoutNames := map[uint]string{}
	summaries := make([]LogSummaryView, 0, len(logs))
	for _, l := range logs {
		name, ok := workoutNames[l.WorkoutID]
		if !ok {
			workout, err := s.planRepo.GetWorkout(ctx, l.WorkoutID)
			if err == nil {
				name = workout.Name
			}
			workoutNames[l.WorkoutID] = name
		}
		volume, err := s.logRepo.TotalVolume(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, LogSummaryView{WorkoutLog: l, WorkoutName: name, Volume: volume})
	}
	return &LogListView{Logs: summaries, Total: total}, nil
}

// DeleteLog removes one session and its sets atomically.
func (s *workoutService) DeleteLog(ctx context.Context, userID, logID uint) error {
	if _, err := s.logRepo.GetLog(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.logRepo.DeleteExerciseLogs(ctx, logID); err != nil {
			return err
		}
		return s.logRepo.DeleteLog(ctx, logID)
	})
}

// === Plan management ===

// GetPlans returns the user's own plans plus shared templates.
func (s *workoutService) GetPlans(ctx context.Context, userID uint) (*PlanListView, error) {
	userPlans, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	templates, err := s.planRepo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return &PlanListView{UserPlans: userPlans, TemplatePlans: templates}, nil
}

// GetPlanDetails returns the full tree of a plan the user can see: one
// of their own, or any template.
func (s *workoutService) GetPlanDetails(ctx context.Context, userID, planID uint) (*WorkoutPlanView, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.IsTemplate && plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return s.buildPlanView(ctx, plan)
}

// CreatePlan inserts a new plan with its full workout tree in one
// transaction. OrderNum is assigned densely in submission order.
func (s *workoutService) CreatePlan(ctx context.Context, userID uint, input PlanInput) (*WorkoutPlanView, error) {
	if err := validatePlanTree(input); err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		Goal:        input.Goal,
		IsTemplate:  false,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.planRepo.Create(ctx, plan); err != nil {
			return err
		}
		for _, wIn := range input.Workouts {
			if err := s.insertWorkoutTree(ctx, plan.ID, wIn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPlanDetails(ctx, userID, plan.ID)
}

// UpdatePlan reconciles the submitted tree against stored rows: matching
// ids update in place, unknown entries insert, stored rows missing from
// the submission are deleted. The whole reconciliation is one
// transaction; order numbers are reassigned densely on every call.
func (s *workoutService) UpdatePlan(ctx context.Context, userID, planID uint, input PlanInput) (*WorkoutPlanView, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if err := validatePlanTree(input); err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		plan.Name = input.Name
		plan.Description = input.Description
		plan.Frequency = input.Frequency
		plan.Goal = input.Goal
		if err := s.planRepo.Update(ctx, plan); err != nil {
			return err
		}

		existing, err := s.planRepo.ListWorkouts(ctx, planID)
		if err != nil {
			return err
		}
		existingByID := make(map[uint]domain.Workout, len(existing))
		for _, w := range existing {
			existingByID[w.ID] = w
		}

		kept := make(map[uint]bool, len(input.Workouts))
		for _, wIn := range input.Workouts {
			if wIn.WorkoutID != nil {
				if current, ok := existingByID[*wIn.WorkoutID]; ok {
					current.Name = wIn.Name
					current.Description = wIn.Description
					current.DayOfWeek = wIn.DayOfWeek
					if err := s.planRepo.UpdateWorkout(ctx, &current); err != nil {
						return err
					}
					if err := s.syncWorkoutExercises(ctx, current.ID, wIn.Exercises); err != nil {
						return err
					}
					kept[current.ID] = true
					continue
				}
			}
			// No id, or an id we don't know: insert as new.
			workout := &domain.Workout{
				PlanID:      planID,
				Name:        wIn.Name,
				Description: wIn.Description,
				DayOfWeek:   wIn.DayOfWeek,
			}
			if _, err := s.planRepo.CreateWorkout(ctx, workout); err != nil {
				return err
			}
			for i, eIn := range wIn.Exercises {
				if err := s.insertWorkoutExercise(ctx, workout.ID, eIn, i+1); err != nil {
					return err
				}
			}
			kept[workout.ID] = true
		}

		// Missing from the submission means delete, children first.
		for _, w := range existing {
			if kept[w.ID] {
				continue
			}
			if err := s.planRepo.DeleteWorkoutExercises(ctx, w.ID); err != nil {
				return err
			}
			if err := s.planRepo.DeleteWorkout(ctx, w.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPlanDetails(ctx, userID, planID)
}

// DeletePlan removes a plan and its whole tree atomically. Templates
// are not visible to this operation and report not found.
func (s *workoutService) DeletePlan(ctx context.Context, userID, planID uint) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		if errors.Is(err, ErrPlanIsTemplate) {
			return ErrPlanNotFound
		}
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		workouts, err := s.planRepo.ListWorkouts(ctx, planID)
		if err != nil {
			return err
		}
		for _, w := range workouts {
			if err := s.planRepo.DeleteWorkoutExercises(ctx, w.ID); err != nil {
				return err
			}
			if err := s.planRepo.DeleteWorkout(ctx, w.ID); err != nil {
				return err
			}
		}
		return s.planRepo.Delete(ctx, planID)
	})
}

// CopyTemplate clones a template plan, its workouts and prescriptions
// into a new user-owned plan.
func (s *workoutService) CopyTemplate(ctx context.Context, userID, templateID uint) (*WorkoutPlanView, error) {
	template, err := s.planRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if !template.IsTemplate {
		return nil, ErrTemplateNotFound
	}

	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Name:        template.Name,
		Description: template.Description,
		Frequency:   template.Frequency,
		Goal:        template.Goal,
		IsTemplate:  false,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.planRepo.Create(ctx, plan); err != nil {
			return err
		}
		workouts, err := s.planRepo.ListWorkouts(ctx, templateID)
		if err != nil {
			return err
		}
		for _, w := range workouts {
			copyWorkout := &domain.Workout{
				PlanID:      plan.ID,
				Name:        w.Name,
				Description: w.Description,
				DayOfWeek:   w.DayOfWeek,
			}
			if _, err := s.planRepo.CreateWorkout(ctx, copyWorkout); err != nil {
				return err
			}
			exercises, err := s.planRepo.ListWorkoutExercises(ctx, w.ID)
			if err != nil {
				return err
			}
			for _, we := range exercises {
				copyWE := we
				copyWE.ID = 0
				copyWE.WorkoutID = copyWorkout.ID
				if _, err := s.planRepo.CreateWorkoutExercise(ctx, &copyWE); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPlanDetails(ctx, userID, plan.ID)
}

// TodaysWorkout suggests the workout scheduled for the current weekday
// on the user's most recent plan, with the latest logged performance per
// exercise.
func (s *workoutService) TodaysWorkout(ctx context.Context, userID uint) (*TodayView, error) {
	plans, err := s.planRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return &TodayView{Message: "No active workout plan found"}, nil
	}
	plan := plans[0]

	// ISO weekday: 1=Monday .. 7=Sunday.
	day := int(time.Now().Weekday())
	if day == 0 {
		day = 7
	}

	workout, err := s.planRepo.FindWorkoutForDay(ctx, plan.ID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &TodayView{Plan: &plan, Message: "No workout scheduled for today"}, nil
		}
		return nil, err
	}

	views, err := s.workoutExerciseViews(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	exercises := make([]TodayExerciseView, 0, len(views))
	for _, v := range views {
		tv := TodayExerciseView{WorkoutExerciseView: v}
		if last, err := s.logRepo.LatestExerciseLog(ctx, userID, v.ExerciseID); err == nil &&
			last.Weight != nil && last.Reps != nil {
			tv.PreviousPerformance = fmt.Sprintf("%v × %d", *last.Weight, *last.Reps)
		}
		exercises = append(exercises, tv)
	}
	return &TodayView{Plan: &plan, Workout: workout, Exercises: exercises}, nil
}

// === Helpers ===

// ownedPlan loads a plan that the user may mutate: it must exist, belong
// to them, and not be a template.
func (s *workoutService) ownedPlan(ctx context.Context, userID, planID uint) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.IsTemplate {
		return nil, ErrPlanIsTemplate
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// visibleWorkout loads a workout the user may log against: part of one
// of their plans or of a template.
func (s *workoutService) visibleWorkout(ctx context.Context, userID, workoutID uint) (*domain.Workout, error) {
	workout, err := s.planRepo.GetWorkout(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, workout.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !plan.IsTemplate && plan.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}

func validatePlanTree(input PlanInput) error {
	if input.Name == "" || input.Frequency == "" {
		return fmt.Errorf("%w: plan name and frequency are required", ErrValidationFailed)
	}
	for _, w := range input.Workouts {
		if w.Name == "" {
			return fmt.Errorf("%w: workout name is required", ErrValidationFailed)
		}
		for _, e := range w.Exercises {
			if e.ExerciseID == 0 || e.Sets <= 0 {
				return fmt.Errorf("%w: exercise ID and sets are required", ErrValidationFailed)
			}
		}
	}
	return nil
}

// insertWorkoutTree inserts one workout and its prescriptions with dense
// order numbers.
func (s *workoutService) insertWorkoutTree(ctx context.Context, planID uint, wIn WorkoutInput) error {
	workout := &domain.Workout{
		PlanID:      planID,
		Name:        wIn.Name,
		Description: wIn.Description,
		DayOfWeek:   wIn.DayOfWeek,
	}
	if _, err := s.planRepo.CreateWorkout(ctx, workout); err != nil {
		return err
	}
	for i, eIn := range wIn.Exercises {
		if err := s.insertWorkoutExercise(ctx, workout.ID, eIn, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *workoutService) insertWorkoutExercise(ctx context.Context, workoutID uint, eIn WorkoutExerciseInput, orderNum int) error {
	we := &domain.WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: eIn.ExerciseID,
		Sets:       eIn.Sets,
		Reps:       eIn.Reps,
		RestPeriod: eIn.RestPeriod,
		Notes:      eIn.Notes,
		OrderNum:   orderNum,
	}
	_, err := s.planRepo.CreateWorkoutExercise(ctx, we)
	return err
}

// syncWorkoutExercises reconciles one workout's prescriptions against
// the submission and renumbers them 1..N in submission order.
func (s *workoutService) syncWorkoutExercises(ctx context.Context, workoutID uint, inputs []WorkoutExerciseInput) error {
	existing, err := s.planRepo.ListWorkoutExercises(ctx, workoutID)
	if err != nil {
		return err
	}
	existingIDs := make(map[uint]bool, len(existing))
	for _, we := range existing {
		existingIDs[we.ID] = true
	}

	kept := make(map[uint]bool, len(inputs))
	orderNum := 1
	for _, eIn := range inputs {
		if eIn.WorkoutExerciseID != nil && existingIDs[*eIn.WorkoutExerciseID] {
			we := &domain.WorkoutExercise{
				ID:         *eIn.WorkoutExerciseID,
				WorkoutID:  workoutID,
				ExerciseID: eIn.ExerciseID,
				Sets:       eIn.Sets,
				Reps:       eIn.Reps,
				RestPeriod: eIn.RestPeriod,
				Notes:      eIn.Notes,
				OrderNum:   orderNum,
			}
			if err := s.planRepo.UpdateWorkoutExercise(ctx, we); err != nil {
				return err
			}
			kept[we.ID] = true
		} else {
			if err := s.insertWorkoutExercise(ctx, workoutID, eIn, orderNum); err != nil {
				return err
			}
		}
		orderNum++
	}

	for _, we := range existing {
		if !kept[we.ID] {
			if err := s.planRepo.DeleteWorkoutExercise(ctx, we.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildPlanView assembles the nested plan tree with catalog fields.
func (s *workoutService) buildPlanView(ctx context.Context, plan *domain.WorkoutPlan) (*WorkoutPlanView, error) {
	workouts, err := s.planRepo.ListWorkouts(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	views := make([]WorkoutView, 0, len(workouts))
	for _, w := range workouts {
		exercises, err := s.workoutExerciseViews(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, WorkoutView{Workout: w, Exercises: exercises})
	}
	return &WorkoutPlanView{Plan: *plan, Workouts: views}, nil
}

func (s *workoutService) workoutExerciseViews(ctx context.Context, workoutID uint) ([]WorkoutExerciseView, error) {
	rows, err := s.planRepo.ListWorkoutExercises(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.exerciseCatalog(ctx, exerciseIDsOf(rows))
	if err != nil {
		return nil, err
	}
	views := make([]WorkoutExerciseView, 0, len(rows))
	for _, we := range rows {
		v := WorkoutExerciseView{WorkoutExercise: we}
		if ex, ok := catalog[we.ExerciseID]; ok {
			v.Name = ex.Name
			v.MuscleGroup = ex.MuscleGroup
			v.EquipmentNeeded = ex.EquipmentNeeded
			v.IsCompound = ex.IsCompound
		}
		views = append(views, v)
	}
	return views, nil
}

// buildLogView re-reads the persisted session and groups sets per
// exercise in submission order (insertion order of the rows), so a
// round trip returns exactly what was sent.
func (s *workoutService) buildLogView(ctx context.Context, logRow *domain.WorkoutLog, newRecords []domain.PersonalRecord) (*WorkoutLogView, error) {
	view := &WorkoutLogView{
		LogID:       logRow.ID,
		WorkoutID:   logRow.WorkoutID,
		CompletedAt: logRow.CompletedAt,
		Duration:    logRow.Duration,
		Notes:       logRow.Notes,
		Rating:      logRow.Rating,
		NewRecords:  newRecords,
	}
	if workout, err := s.planRepo.GetWorkout(ctx, logRow.WorkoutID); err == nil {
		view.WorkoutName = workout.Name
	}

	volume, err := s.logRepo.TotalVolume(ctx, logRow.ID)
	if err != nil {
		return nil, err
	}
	view.Volume = volume

	rows, err := s.logRepo.ListExerciseLogs(ctx, logRow.ID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.exerciseCatalog(ctx, exerciseIDsOfLogs(rows))
	if err != nil {
		return nil, err
	}

	grouped := map[uint]int{}
	exercises := []LoggedExerciseView{}
	for _, row := range rows {
		idx, ok := grouped[row.ExerciseID]
		if !ok {
			ev := LoggedExerciseView{ExerciseID: row.ExerciseID}
			if ex, found := catalog[row.ExerciseID]; found {
				ev.Name = ex.Name
			}
			exercises = append(exercises, ev)
			idx = len(exercises) - 1
			grouped[row.ExerciseID] = idx
		}
		exercises[idx].Sets = append(exercises[idx].Sets, LoggedSetView{
			SetNumber: row.SetNumber,
			Reps:      row.Reps,
			Weight:    row.Weight,
			Notes:     row.Notes,
		})
	}
	view.Exercises = exercises
	return view, nil
}

func (s *workoutService) exerciseCatalog(ctx context.Context, ids []uint) (map[uint]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[uint]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		catalog[ex.ID] = ex
	}
	return catalog, nil
}

// requireExercises verifies that every ID resolves to a library row.
func (s *workoutService) requireExercises(ctx context.Context, ids []uint) error {
	catalog, err := s.exerciseCatalog(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			return ErrExerciseNotFound
		}
	}
	return nil
}

func exerciseIDsOfInput(entries []LoggedExerciseInput) []uint {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, e := range entries {
		if !seen[e.ExerciseID] {
			seen[e.ExerciseID] = true
			ids = append(ids, e.ExerciseID)
		}
	}
	return ids
}

func exerciseIDsOf(rows []domain.WorkoutExercise) []uint {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, r := range rows {
		if !seen[r.ExerciseID] {
			seen[r.ExerciseID] = true
			ids = append(ids, r.ExerciseID)
		}
	}
	return ids
}

func exerciseIDsOfLogs(rows []domain.ExerciseLog) []uint {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, r := range rows {
		if !seen[r.ExerciseID] {
			seen[r.ExerciseID] = true
			ids = append(ids, r.ExerciseID)
		}
	}
	return ids
}
