package repository

import (
	"strings"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	FindAll() ([]model.Subject, error)
	// FindByFuzzyName resolves a requested subject name case-insensitively,
	// also matching a whitespace-collapsed variant. Mathematics-family
	// aliases ("math", "maths", "mathematics") additionally match any
	// subject whose name contains "math".
	FindByFuzzyName(name string) (*model.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.Order("subject_name ASC").Find(&subjects).Error
	return subjects, err
}

// SubjectAliases expands a raw subject request into the lowercase aliases that
// are matched for equality. The second return value reports whether the
// request denotes the mathematics family.
func SubjectAliases(raw string) ([]string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	collapsed := strings.Join(strings.Fields(normalized), "")

	seen := map[string]bool{}
	aliases := []string{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			aliases = append(aliases, s)
		}
	}
	add(normalized)
	add(collapsed)

	isMath := seen["math"] || seen["maths"] || seen["mathematics"]
	if isMath {
		add("math")
		add("maths")
		add("mathematics")
	}
	return aliases, isMath
}

func (r *subjectRepository) FindByFuzzyName(name string) (*model.Subject, error) {
	aliases, isMath := SubjectAliases(name)

	query := r.db.Where("LOWER(subject_name) IN ?", aliases)
	if isMath {
		query = query.Or("subject_name ILIKE ?", "%math%")
	}

	var subject model.Subject
	if err := r.db.Where(query).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}
