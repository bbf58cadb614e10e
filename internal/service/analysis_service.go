package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
	"github.com/pathfinder-edu/pathfinder-backend/internal/catalog"
	"github.com/pathfinder-edu/pathfinder-backend/internal/model"
	"github.com/pathfinder-edu/pathfinder-backend/internal/repository"
)

var (
	ErrNoResults          = errors.New("no results uploaded yet")
	ErrRoadmapUnavailable = errors.New("roadmap not available for this domain")
)

// Report is the full academic analysis of a student.
type Report struct {
	analysis.Summary
	DomainRecommendation *analysis.Recommendation `json:"domain_recommendation,omitempty"`
	Message              string                   `json:"message,omitempty"`
}

// RoadmapView is a learning roadmap plus matching courses.
type RoadmapView struct {
	RecommendedDomain string                 `json:"recommended_domain"`
	Career            string                 `json:"career"`
	Roadmap           catalog.Stages         `json:"roadmap"`
	Resources         *catalog.ResourceGroup `json:"resources,omitempty"`
}

// AnalysisService combines marks and assessment results into guidance.
type AnalysisService struct {
	resultRepo     *repository.SemesterResultRepository
	assessmentRepo *repository.AssessmentRepository
	catalog        *catalog.Catalog
	log            zerolog.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	resultRepo *repository.SemesterResultRepository,
	assessmentRepo *repository.AssessmentRepository,
	cat *catalog.Catalog,
	log zerolog.Logger,
) *AnalysisService {
	return &AnalysisService{
		resultRepo:     resultRepo,
		assessmentRepo: assessmentRepo,
		catalog:        cat,
		log:            log.With().Str("component", "analysis_service").Logger(),
	}
}

// Analyze builds the report for a student. A student without marks gets a
// report with HasResults false.
func (s *AnalysisService) Analyze(ctx context.Context, studentID int) (*Report, error) {
	rows, err := s.resultRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Report{Summary: analysis.Summarize(nil), Message: "No results uploaded yet"}, nil
	}

	marks := toMarks(rows)
	rec := analysis.Recommend(marks, s.assessedScores(ctx, studentID))
	return &Report{Summary: analysis.Summarize(marks), DomainRecommendation: &rec}, nil
}

// Roadmap returns the roadmap for the student's recommended domain.
func (s *AnalysisService) Roadmap(ctx context.Context, studentID int) (*RoadmapView, error) {
	report, err := s.Analyze(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if report.DomainRecommendation == nil {
		return nil, ErrNoResults
	}

	rec := report.DomainRecommendation
	rm, ok := s.catalog.RoadmapFor(rec.RecommendedKey)
	if !ok {
		return nil, ErrRoadmapUnavailable
	}

	view := &RoadmapView{
		RecommendedDomain: rec.RecommendedDomain,
		Career:            rm.Career,
		Roadmap:           rm.Stages,
	}
	if g, ok := s.catalog.ResourcesFor(rec.RecommendedKey); ok {
		view.Resources = &g
	}
	return view, nil
}

// assessedScores turns the latest assessment into domain scores. Failures
// degrade to marks-only analysis.
func (s *AnalysisService) assessedScores(ctx context.Context, studentID int) analysis.Scores {
	latest, err := s.assessmentRepo.Latest(ctx, studentID)
	if err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Latest assessment unavailable, using marks only")
		return nil
	}
	if latest == nil || latest.Aborted {
		return nil
	}

	cats := make([]assessment.Category, 0, len(latest.Categories))
	for _, c := range latest.Categories {
		cats = append(cats, assessment.Category(c))
	}
	return analysis.AssessmentScores(cats, latest.AccuracyPercent)
}

func toMarks(rows []model.SemesterResult) []analysis.Mark {
	marks := make([]analysis.Mark, 0, len(rows))
	for _, r := range rows {
		marks = append(marks, analysis.Mark{Semester: r.Semester, Subject: r.Subject, Marks: r.Marks})
	}
	return marks
}
