package services

import (
	"sort"
	"strings"
)

// Lexicon maps a canonical category key to its surface-form synonyms. The
// campus domain is bilingual, so every category carries both Korean and
// English terms. Lexicons are built once at startup and injected into the
// scorer; they are never mutated afterwards.
type Lexicon map[string][]string

// ContainsAny reports whether any synonym of the category appears in text.
// Matching is case-insensitive substring containment.
func (l Lexicon) ContainsAny(category, text string) bool {
	lowered := strings.ToLower(text)
	for _, synonym := range l[category] {
		if strings.Contains(lowered, strings.ToLower(synonym)) {
			return true
		}
	}
	return false
}

// Categories returns the sorted category keys whose synonym sets hit the
// given text.
func (l Lexicon) Categories(text string) []string {
	var categories []string
	for category := range l {
		if l.ContainsAny(category, text) {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	return categories
}

// DefaultTechLexicon maps project-side technology terms to the vocabulary
// research labs use in their keyword and research-area text.
func DefaultTechLexicon() Lexicon {
	return Lexicon{
		"ai":         {"AI", "Machine Learning", "Deep Learning", "인공지능", "머신러닝", "딥러닝"},
		"ml":         {"Machine Learning", "AI", "Deep Learning", "머신러닝", "인공지능"},
		"web":        {"Web", "Frontend", "Backend", "웹개발", "JavaScript", "React", "Node.js"},
		"app":        {"Mobile", "Android", "iOS", "React Native", "Flutter", "모바일"},
		"data":       {"Data Science", "Big Data", "Analytics", "데이터사이언스", "빅데이터"},
		"iot":        {"IoT", "Internet of Things", "Sensor", "사물인터넷", "센서"},
		"blockchain": {"Blockchain", "Cryptocurrency", "블록체인"},
		"ar":         {"AR", "Augmented Reality", "증강현실"},
		"vr":         {"VR", "Virtual Reality", "가상현실"},
		"cv":         {"Computer Vision", "Image Processing", "컴퓨터비전", "영상처리"},
		"nlp":        {"NLP", "Natural Language Processing", "자연어처리"},
		"robotics":   {"Robotics", "Robot", "로봇", "로보틱스"},
		"security":   {"Security", "Cybersecurity", "보안", "사이버보안"},
	}
}

// DefaultIndustryLexicon maps industry categories to research-field terms.
// Industry hits annotate the human-readable matching reason only; they never
// feed the similarity score.
func DefaultIndustryLexicon() Lexicon {
	return Lexicon{
		"healthcare":    {"의료", "헬스케어", "Medical", "Biomedical", "바이오메디컬"},
		"automotive":    {"자동차", "자율주행", "Automotive", "Autonomous Vehicle"},
		"fintech":       {"금융", "FinTech", "블록체인", "Blockchain"},
		"education":     {"교육", "Education", "EdTech", "학습"},
		"entertainment": {"엔터테인먼트", "Entertainment", "게임", "Game"},
		"environment":   {"환경", "Environment", "기후", "Climate"},
		"manufacturing": {"제조", "Manufacturing", "산업", "Industrial"},
	}
}
