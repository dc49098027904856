package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/edutools/mark-register/internal/data"
	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/domain/model"
	apperrors "github.com/edutools/mark-register/internal/errors"
	"github.com/edutools/mark-register/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB          *sql.DB
	departments *service.DepartmentService
	subjects    *service.SubjectService
	patterns    *service.PatternService
	assignments *service.AssignmentService
	profiles    *data.ProfileRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	departmentRepo := data.NewDepartmentRepo(db)
	subjectRepo := data.NewSubjectRepo(db)
	patternRepo := data.NewPatternRepo(db)

	return Services{
		DB:          db,
		departments: service.NewDepartmentService(service.DepartmentServiceOptions{Repo: departmentRepo}),
		subjects:    service.NewSubjectService(service.SubjectServiceOptions{Repo: subjectRepo}),
		patterns: service.NewPatternService(service.PatternServiceOptions{
			Repo:     patternRepo,
			Subjects: subjectRepo,
		}),
		assignments: service.NewAssignmentService(service.AssignmentServiceOptions{Repo: data.NewAssignmentRepo(db)}),
		profiles:    data.NewProfileRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Re-running is safe: existing records are reused instead of recreated.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	departments, err := seedDepartments(ctx, svcs.departments, logger)
	if err != nil {
		return err
	}

	subjects, err := seedSubjects(ctx, svcs.subjects, departments, logger)
	if err != nil {
		return err
	}

	profiles, err := seedProfiles(ctx, svcs.profiles, logger)
	if err != nil {
		return err
	}

	failures := 0
	failures += seedPatterns(ctx, svcs.patterns, subjects, logger)
	failures += seedAssignments(ctx, svcs.assignments, departments, subjects, profiles, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedDepartments(
	ctx context.Context,
	svc *service.DepartmentService,
	logger *slog.Logger,
) (map[string]string, error) {
	requests := []model.CreateDepartmentRequest{
		{Name: "Computer Science and Engineering", Code: "CSE"},
		{Name: "Electronics and Communication Engineering", Code: "ECE"},
		{Name: "Mechanical Engineering", Code: "MECH"},
	}

	byCode := make(map[string]string, len(requests))
	for i := range requests {
		req := requests[i]
		created, err := svc.Create(ctx, &req)
		if err == nil {
			logSeeded(ctx, logger, "created department", "code", req.Code)
			byCode[req.Code] = created.ID
			continue
		}
		if !apperrors.IsConflict(err) {
			return nil, fmt.Errorf("seed department %s: %w", req.Code, err)
		}
		logSeeded(ctx, logger, "department already exists", "code", req.Code)

		existing, lookupErr := findDepartmentByCode(ctx, svc, req.Code)
		if lookupErr != nil {
			return nil, lookupErr
		}
		byCode[req.Code] = existing.ID
	}
	return byCode, nil
}

func findDepartmentByCode(
	ctx context.Context,
	svc *service.DepartmentService,
	code string,
) (*model.Department, error) {
	departments, err := svc.List(ctx, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	for _, d := range departments {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, fmt.Errorf("department %s not found after conflict", code)
}

type subjectSeed struct {
	DepartmentCode     string
	Code               string
	Name               string
	QuestionPaperCodes []string
}

func defaultSubjects() []subjectSeed {
	return []subjectSeed{
		{"CSE", "CS301", "Data Structures", []string{"CS301-A", "CS301-B"}},
		{"CSE", "CS302", "Operating Systems", []string{"CS302-A"}},
		{"ECE", "EC201", "Digital Electronics", []string{"EC201-A"}},
		{"MECH", "ME101", "Engineering Thermodynamics", []string{"ME101-A"}},
	}
}

func seedSubjects(
	ctx context.Context,
	svc *service.SubjectService,
	departments map[string]string,
	logger *slog.Logger,
) (map[string]string, error) {
	byCode := make(map[string]string)
	for _, seed := range defaultSubjects() {
		departmentID, ok := departments[seed.DepartmentCode]
		if !ok {
			return nil, fmt.Errorf("subject %s references unknown department %s", seed.Code, seed.DepartmentCode)
		}

		created, err := svc.Create(ctx, &model.CreateSubjectRequest{
			DepartmentID:       departmentID,
			Code:               seed.Code,
			Name:               seed.Name,
			QuestionPaperCodes: seed.QuestionPaperCodes,
		})
		if err == nil {
			logSeeded(ctx, logger, "created subject", "code", seed.Code)
			byCode[seed.Code] = created.ID
			continue
		}
		if !apperrors.IsConflict(err) {
			return nil, fmt.Errorf("seed subject %s: %w", seed.Code, err)
		}
		logSeeded(ctx, logger, "subject already exists", "code", seed.Code)

		existingID, lookupErr := findSubjectByCode(ctx, svc, departmentID, seed.Code)
		if lookupErr != nil {
			return nil, lookupErr
		}
		byCode[seed.Code] = existingID
	}
	return byCode, nil
}

func findSubjectByCode(
	ctx context.Context,
	svc *service.SubjectService,
	departmentID, code string,
) (string, error) {
	subjects, err := svc.List(ctx, model.SubjectsListOptions{Limit: 200, DepartmentID: &departmentID})
	if err != nil {
		return "", fmt.Errorf("list subjects: %w", err)
	}
	for _, s := range subjects {
		if s.Code == code {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("subject %s not found after conflict", code)
}

func seedProfiles(
	ctx context.Context,
	repo *data.ProfileRepo,
	logger *slog.Logger,
) (map[string]string, error) {
	profiles := []domainauth.Profile{
		{ID: "static:hod", Username: "hod", Role: domainauth.RoleHOD, Department: "CSE"},
		{ID: "static:user", Username: "user", Role: domainauth.RoleStaff, Department: "CSE"},
	}

	byUsername := make(map[string]string, len(profiles))
	for _, p := range profiles {
		created, err := repo.Create(ctx, p)
		if err == nil {
			logSeeded(ctx, logger, "created profile", "username", p.Username, "role", string(p.Role))
			byUsername[p.Username] = created.ID
			continue
		}
		if !apperrors.IsConflict(err) {
			return nil, fmt.Errorf("seed profile %s: %w", p.Username, err)
		}
		logSeeded(ctx, logger, "profile already exists", "username", p.Username)

		existing, lookupErr := repo.GetByUsername(ctx, p.Username)
		if lookupErr != nil {
			return nil, fmt.Errorf("lookup profile %s: %w", p.Username, lookupErr)
		}
		byUsername[p.Username] = existing.ID
	}
	return byUsername, nil
}

func seedPatterns(
	ctx context.Context,
	svc *service.PatternService,
	subjects map[string]string,
	logger *slog.Logger,
) int {
	type patternSeed struct {
		SubjectCode string
		PaperCode   string
		Questions   []model.Question
	}
	seeds := []patternSeed{
		{
			SubjectCode: "CS301",
			PaperCode:   "CS301-A",
			Questions: []model.Question{
				{Number: 1, CourseOutcome: 1, MaxMarks: 10},
				{Number: 2, CourseOutcome: 1, MaxMarks: 10},
				{Number: 3, CourseOutcome: 2, MaxMarks: 15},
				{Number: 4, CourseOutcome: 3, MaxMarks: 15},
			},
		},
		{
			SubjectCode: "EC201",
			PaperCode:   "EC201-A",
			Questions: []model.Question{
				{Number: 1, CourseOutcome: 1, MaxMarks: 20},
				{Number: 2, CourseOutcome: 4, MaxMarks: 20},
				{Number: 3, CourseOutcome: 5, MaxMarks: 10},
			},
		},
	}

	failures := 0
	for _, seed := range seeds {
		subjectID, ok := subjects[seed.SubjectCode]
		if !ok {
			logSeedError(ctx, logger, "pattern references unknown subject", "subject", seed.SubjectCode)
			failures++
			continue
		}

		_, err := svc.Create(ctx, &model.CreateQuestionPatternRequest{
			SubjectID:         subjectID,
			QuestionPaperCode: seed.PaperCode,
			Questions:         seed.Questions,
		})
		switch {
		case err == nil:
			logSeeded(ctx, logger, "created question pattern", "paper_code", seed.PaperCode)
		case apperrors.IsConflict(err):
			logSeeded(ctx, logger, "question pattern already exists", "paper_code", seed.PaperCode)
		default:
			logSeedError(ctx, logger, "failed to create question pattern", "paper_code", seed.PaperCode, "error", err)
			failures++
		}
	}
	return failures
}

func seedAssignments(
	ctx context.Context,
	svc *service.AssignmentService,
	departments map[string]string,
	subjects map[string]string,
	profiles map[string]string,
	logger *slog.Logger,
) int {
	profileID, ok := profiles["user"]
	if !ok {
		logSeedError(ctx, logger, "assignment references unknown profile", "username", "user")
		return 1
	}
	departmentID, ok := departments["CSE"]
	if !ok {
		logSeedError(ctx, logger, "assignment references unknown department", "code", "CSE")
		return 1
	}

	subjectIDs := make([]string, 0, 2)
	for _, code := range []string{"CS301", "CS302"} {
		if id, found := subjects[code]; found {
			subjectIDs = append(subjectIDs, id)
		}
	}
	if len(subjectIDs) == 0 {
		logSeedError(ctx, logger, "no seeded subjects available for assignment")
		return 1
	}

	// Assign upserts, so reseeding just replaces the subject set.
	if _, err := svc.Assign(ctx, &model.CreateStaffAssignmentRequest{
		ProfileID:    profileID,
		DepartmentID: departmentID,
		SubjectIDs:   subjectIDs,
	}); err != nil {
		logSeedError(ctx, logger, "failed to create staff assignment", "profile_id", profileID, "error", err)
		return 1
	}
	logSeeded(ctx, logger, "assigned subjects to staff profile", "profile_id", profileID)
	return 0
}

func logSeeded(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, msg, args...)
	}
}

func logSeedError(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.ErrorContext(ctx, msg, args...)
	}
}
