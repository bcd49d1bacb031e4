package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sejonghub/startup-hub-backend/models"
)

// Component weights of the similarity score. Hand-tuned values carried over
// from the original matching heuristic; changing them requires a separate
// calibration pass against the lab catalog.
const (
	weightServiceType = 0.30
	weightTechStack   = 0.25
	weightKeywords    = 0.25
	weightDescription = 0.20
)

// serviceTypeKeywords maps a project's service type to the terms looked for
// in a lab's keywords and research areas.
var serviceTypeKeywords = map[string][]string{
	models.ServiceTypeApp: {"모바일", "Mobile", "Android", "iOS", "App"},
	models.ServiceTypeWeb: {"웹", "Web", "Frontend", "Backend", "웹개발"},
	models.ServiceTypeAI:  {"AI", "인공지능", "Machine Learning", "머신러닝", "딥러닝"},
}

// serviceTypeTechs maps a project's service type to the technology substrings
// expected in a lab's tech stack. Entries are lowercase; lab text is lowered
// before comparison.
var serviceTypeTechs = map[string][]string{
	models.ServiceTypeApp: {"mobile", "android", "ios", "react native", "flutter"},
	models.ServiceTypeWeb: {"web", "javascript", "react", "vue", "python", "node.js"},
	models.ServiceTypeAI:  {"python", "tensorflow", "pytorch", "ai", "ml"},
}

// domainKeywords is the fixed bilingual keyword universe for the keyword
// component. A keyword only counts toward the denominator when the project
// text mentions it.
var domainKeywords = []string{
	"ai", "인공지능", "ml", "머신러닝", "data", "데이터", "web", "웹",
	"mobile", "모바일", "app", "앱", "iot", "사물인터넷", "security", "보안",
	"robot", "로봇", "vision", "비전", "nlp", "자연어",
}

// wordPattern splits text into words for the Jaccard component. \p{L}\p{N}
// instead of \w so Hangul counts as word characters.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ScoreBreakdown carries the four component scores behind a similarity score,
// retained for explainability. Factors holds human-readable labels per
// component.
type ScoreBreakdown struct {
	ServiceType float64           `json:"service_type"`
	TechStack   float64           `json:"tech_stack"`
	Keywords    float64           `json:"keywords"`
	Description float64           `json:"description"`
	Total       float64           `json:"total_score"`
	Factors     map[string]string `json:"factors,omitempty"`
}

// SimilarityScorer computes the relevance of a research lab to a project as a
// weighted sum of four component scores, each in [0, 1]. Scoring is pure:
// missing or malformed lab data degrades the affected component to zero
// instead of failing the run.
type SimilarityScorer struct {
	techLexicon     Lexicon
	industryLexicon Lexicon
}

func NewSimilarityScorer(techLexicon, industryLexicon Lexicon) *SimilarityScorer {
	return &SimilarityScorer{
		techLexicon:     techLexicon,
		industryLexicon: industryLexicon,
	}
}

// Score returns the composite similarity of the lab to the project along with
// its component breakdown. The total is exactly the weighted sum of the four
// components; no normalization is applied when a component has no source data.
func (s *SimilarityScorer) Score(project models.Project, lab models.ResearchLab) (float64, ScoreBreakdown) {
	serviceScore := s.serviceTypeScore(project, lab)
	techScore := s.techStackScore(project, lab)
	keywordScore := s.keywordScore(project, lab)
	descriptionScore := s.descriptionScore(project, lab)

	total := serviceScore*weightServiceType +
		techScore*weightTechStack +
		keywordScore*weightKeywords +
		descriptionScore*weightDescription

	breakdown := ScoreBreakdown{
		ServiceType: serviceScore,
		TechStack:   techScore,
		Keywords:    keywordScore,
		Description: descriptionScore,
		Total:       total,
		Factors: map[string]string{
			"service_type": fmt.Sprintf("서비스 타입: %s", project.ServiceType),
			"tech_stack":   "기술 스택 관련성",
			"keywords":     "연구 분야 키워드 매칭",
			"description":  "프로젝트-연구실 설명 유사도",
		},
	}

	return total, breakdown
}

// IndustryCategories returns the industry-lexicon categories detected in the
// project text, used to annotate matching reasons.
func (s *SimilarityScorer) IndustryCategories(project models.Project) []string {
	return s.industryLexicon.Categories(project.SearchableText())
}

// serviceTypeScore checks how many of the type's keywords appear in the lab's
// keywords or research-area text.
func (s *SimilarityScorer) serviceTypeScore(project models.Project, lab models.ResearchLab) float64 {
	keywords := serviceTypeKeywords[project.ServiceType]
	if len(keywords) == 0 {
		return 0.0
	}

	labKeywords := strings.ToLower(lab.Keywords)
	labResearch := strings.ToLower(lab.ResearchAreas)

	matches := 0
	for _, keyword := range keywords {
		lowered := strings.ToLower(keyword)
		if strings.Contains(labKeywords, lowered) || strings.Contains(labResearch, lowered) {
			matches++
		}
	}

	return clamp01(float64(matches) / float64(len(keywords)))
}

// techStackScore checks expected technology substrings for the project type
// against the lab's tech stack. A lab without tech stack data scores zero.
func (s *SimilarityScorer) techStackScore(project models.Project, lab models.ResearchLab) float64 {
	if lab.TechStack == "" {
		return 0.0
	}

	var labTech string
	if parts := decodeStringList(lab.TechStack); parts != nil {
		labTech = strings.ToLower(strings.Join(parts, " "))
	} else {
		// not valid JSON, treat the column as raw text
		labTech = strings.ToLower(lab.TechStack)
	}

	techs := serviceTypeTechs[project.ServiceType]
	if len(techs) == 0 {
		return 0.0
	}

	matches := 0
	for _, tech := range techs {
		if strings.Contains(labTech, tech) {
			matches++
		}
	}

	return clamp01(float64(matches) / float64(len(techs)))
}

// keywordScore measures, of the domain keywords the project text mentions,
// how many the lab's keywords also mention. No domain keyword in the project
// text means zero, not undefined.
func (s *SimilarityScorer) keywordScore(project models.Project, lab models.ResearchLab) float64 {
	projectText := strings.ToLower(project.SearchableText())
	labKeywords := strings.ToLower(lab.Keywords)

	matches := 0
	total := 0
	for _, word := range domainKeywords {
		if strings.Contains(projectText, word) {
			total++
			if strings.Contains(labKeywords, word) {
				matches++
			}
		}
	}

	if total == 0 {
		return 0.0
	}
	return clamp01(float64(matches) / float64(total))
}

// descriptionScore is the Jaccard similarity of the project text and the
// lab's description plus keywords, over lowercase word sets.
func (s *SimilarityScorer) descriptionScore(project models.Project, lab models.ResearchLab) float64 {
	projectWords := wordSet(project.SearchableText())
	labWords := wordSet(lab.Description + " " + lab.Keywords)

	if len(projectWords) == 0 || len(labWords) == 0 {
		return 0.0
	}

	intersection := 0
	for word := range projectWords {
		if _, ok := labWords[word]; ok {
			intersection++
		}
	}
	union := len(projectWords) + len(labWords) - intersection

	return clamp01(float64(intersection) / float64(union))
}

// decodeStringList parses a JSON string list, returning nil on any decode
// failure so callers fall back to treating the column as raw text.
func decodeStringList(text string) []string {
	var parts []string
	if err := json.Unmarshal([]byte(text), &parts); err != nil {
		return nil
	}
	return parts
}

func wordSet(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
