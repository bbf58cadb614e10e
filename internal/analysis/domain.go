package analysis

import (
	"sort"
	"strings"

	"github.com/pathfinder-edu/pathfinder-backend/internal/assessment"
)

// Domain is a career domain key.
type Domain string

const (
	DomainFrontend      Domain = "frontend"
	DomainBackend       Domain = "backend"
	DomainAIML          Domain = "ai_ml"
	DomainCybersecurity Domain = "cybersecurity"
	DomainDataScience   Domain = "data_science"
	DomainMobile        Domain = "mobile"
	DomainDevOps        Domain = "devops"
	DomainIoT           Domain = "iot"
	DomainBlockchain    Domain = "blockchain"
	DomainGameDev       Domain = "game_dev"
)

// Domains lists every domain in classification priority order.
var Domains = []Domain{
	DomainFrontend,
	DomainBackend,
	DomainAIML,
	DomainCybersecurity,
	DomainDataScience,
	DomainMobile,
	DomainDevOps,
	DomainIoT,
	DomainBlockchain,
	DomainGameDev,
}

// FallbackDomain is recommended when no domain scores above zero.
const FallbackDomain = "Software Engineering"

var domainLabels = map[Domain]string{
	DomainFrontend:      "Frontend Development",
	DomainBackend:       "Backend Development",
	DomainAIML:          "AI/ML",
	DomainCybersecurity: "Cybersecurity",
	DomainDataScience:   "Data Science",
	DomainMobile:        "Mobile Development",
	DomainDevOps:        "DevOps",
	DomainIoT:           "IoT",
	DomainBlockchain:    "Blockchain",
	DomainGameDev:       "Game Development",
}

// Label returns the display name of the domain.
func (d Domain) Label() string {
	if l, ok := domainLabels[d]; ok {
		return l
	}
	return string(d)
}

// Valid reports whether d is a known domain key.
func (d Domain) Valid() bool {
	_, ok := domainLabels[d]
	return ok
}

var subjectKeywords = map[Domain][]string{
	DomainFrontend:      {"web", "html", "css", "javascript", "react", "angular", "vue", "ui", "ux", "frontend"},
	DomainBackend:       {"backend", "server", "api", "database", "sql", "node", "django", "flask", "spring", ".net", "java", "programming"},
	DomainAIML:          {"machine learning", "artificial intelligence", "neural", "deep learning", "ai", "ml", "nlp", "computer vision"},
	DomainCybersecurity: {"security", "cryptography", "network security", "ethical hacking", "information security", "cyber"},
	DomainDataScience:   {"data", "statistics", "analytics", "visualization", "mining", "big data", "data science"},
	DomainMobile:        {"mobile", "android", "ios", "flutter", "react native", "swift", "kotlin"},
	DomainDevOps:        {"devops", "docker", "kubernetes", "ci/cd", "jenkins", "aws", "cloud", "deployment"},
	DomainIoT:           {"iot", "internet of things", "embedded", "sensors", "arduino", "raspberry"},
	DomainBlockchain:    {"blockchain", "cryptocurrency", "smart contract", "ethereum", "web3"},
	DomainGameDev:       {"game", "unity", "3d", "graphics", "animation", "game development"},
}

// Classify returns the first domain, in Domains order, with a keyword
// contained in the subject name.
func Classify(subject string) (Domain, bool) {
	name := strings.ToLower(subject)
	for _, d := range Domains {
		for _, kw := range subjectKeywords[d] {
			if strings.Contains(name, kw) {
				return d, true
			}
		}
	}
	return "", false
}

// Scores holds a 0-100 score per domain.
type Scores map[Domain]float64

// NewScores returns zero scores for every domain.
func NewScores() Scores {
	s := make(Scores, len(Domains))
	for _, d := range Domains {
		s[d] = 0
	}
	return s
}

// Any reports whether some domain scores above zero.
func (s Scores) Any() bool {
	for _, v := range s {
		if v > 0 {
			return true
		}
	}
	return false
}

// Normalize keeps known domains only and clamps each score to [0,100].
func (s Scores) Normalize() Scores {
	out := NewScores()
	for _, d := range Domains {
		out[d] = clampScore(s[d])
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MarksScores averages the marks of the subjects classified into each domain.
func MarksScores(marks []Mark) Scores {
	sums := NewScores()
	counts := make(map[Domain]int, len(Domains))
	for _, m := range marks {
		d, ok := Classify(m.Subject)
		if !ok {
			continue
		}
		sums[d] += m.Marks
		counts[d]++
	}
	for d, n := range counts {
		sums[d] /= float64(n)
	}
	return sums
}

var categoryDomains = map[assessment.Category][]Domain{
	assessment.CategoryPython:             {DomainAIML, DomainDataScience, DomainBackend},
	assessment.CategoryJava:               {DomainBackend, DomainMobile},
	assessment.CategoryC:                  {DomainIoT},
	assessment.CategoryCPP:                {DomainGameDev, DomainIoT},
	assessment.CategoryWebDevelopment:     {DomainFrontend, DomainBackend},
	assessment.CategoryIoT:                {DomainIoT},
	assessment.CategoryCybersecurity:      {DomainCybersecurity},
	assessment.CategoryGeneralProgramming: {DomainBackend},
}

// CategoryDomains returns the domains an assessment category speaks to.
func CategoryDomains(c assessment.Category) []Domain {
	return categoryDomains[c]
}

// AssessmentScores spreads an assessment accuracy over the domains of its
// categories. A domain reached by several categories keeps the highest value.
func AssessmentScores(categories []assessment.Category, accuracy int) Scores {
	out := NewScores()
	v := clampScore(float64(accuracy))
	for _, c := range categories {
		for _, d := range categoryDomains[c] {
			if v > out[d] {
				out[d] = v
			}
		}
	}
	return out
}

// Blend weights marks and assessment scores 0.7/0.3. Without assessment
// data the marks scores are returned unchanged.
func Blend(marks, assessed Scores) Scores {
	if !assessed.Any() {
		return marks
	}
	out := NewScores()
	for _, d := range Domains {
		out[d] = Round2(marks[d]*0.7 + assessed[d]*0.3)
	}
	return out
}

// DomainScore is one ranked domain.
type DomainScore struct {
	Key    Domain  `json:"key"`
	Domain string  `json:"domain"`
	Score  float64 `json:"score"`
}

// PredictionSignals describes which inputs shaped a recommendation.
type PredictionSignals struct {
	UsedAssessmentAnswers bool `json:"used_assessment_answers"`
}

// Recommendation is the career-domain outcome of an analysis.
type Recommendation struct {
	RecommendedKey    Domain            `json:"recommended_key,omitempty"`
	RecommendedDomain string            `json:"recommended_domain"`
	Confidence        float64           `json:"confidence"`
	TopDomains        []DomainScore     `json:"top_domains"`
	WeakAreas         []string          `json:"weak_areas"`
	StrongSubjects    []string          `json:"strong_subjects"`
	PredictionSignals PredictionSignals `json:"prediction_signals"`
}

// Rank orders domains by descending score; ties keep Domains order.
func Rank(scores Scores) []DomainScore {
	ranked := make([]DomainScore, 0, len(Domains))
	for _, d := range Domains {
		ranked = append(ranked, DomainScore{Key: d, Domain: d.Label(), Score: Round2(scores[d])})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Recommend picks the best domain from marks blended with assessment scores.
func Recommend(marks []Mark, assessed Scores) Recommendation {
	assessed = assessed.Normalize()
	used := assessed.Any()
	blended := Blend(MarksScores(marks), assessed)

	rec := Recommendation{
		RecommendedDomain: FallbackDomain,
		TopDomains:        []DomainScore{},
		WeakAreas:         extremeSubjects(marks, 3, false),
		StrongSubjects:    extremeSubjects(marks, 3, true),
		PredictionSignals: PredictionSignals{UsedAssessmentAnswers: used},
	}

	for _, ds := range Rank(blended) {
		if ds.Score <= 0 || len(rec.TopDomains) == 3 {
			break
		}
		rec.TopDomains = append(rec.TopDomains, ds)
	}
	if len(rec.TopDomains) > 0 {
		top := rec.TopDomains[0]
		rec.RecommendedKey = top.Key
		rec.RecommendedDomain = top.Domain
		rec.Confidence = top.Score
	}
	return rec
}

func extremeSubjects(marks []Mark, n int, strongest bool) []string {
	sorted := make([]Mark, len(marks))
	copy(sorted, marks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if strongest {
			return sorted[i].Marks > sorted[j].Marks
		}
		return sorted[i].Marks < sorted[j].Marks
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]string, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, m.Subject)
	}
	return out
}
