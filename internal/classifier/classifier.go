package classifier

import (
	"context"
	"errors"
)

// Result — структурированный ответ классификатора
type Result struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Hours    int    `json:"hours"`
}

type Classifier interface {
	Classify(ctx context.Context, image []byte, hint string) (*Result, error)
}

// ErrAllModelsFailed — все модели из списка фолбэка исчерпаны
var ErrAllModelsFailed = errors.New("все модели классификации недоступны")

// Политика severity → срок устранения (в часах)
var categoryPolicy = map[string]Result{
	"Bio-Hazard":          {Severity: "High", Hours: 24},
	"Dead Animal":         {Severity: "High", Hours: 24},
	"Garbage Dump":        {Severity: "Medium", Hours: 72},
	"Construction Debris": {Severity: "Medium", Hours: 72},
	"Litter":              {Severity: "Low", Hours: 168},
}

// DefaultHours — срок по умолчанию при полном отказе классификации (7 дней)
const DefaultHours = 168

// normalize приводит ответ модели к политике: для известной категории severity
// и hours берутся из таблицы, для неизвестной ответ принимается только если
// модель сама вернула корректные severity и hours
func normalize(res *Result) error {
	if res.Category == "" {
		return errors.New("модель не вернула категорию")
	}

	if policy, ok := categoryPolicy[res.Category]; ok {
		res.Severity = policy.Severity
		res.Hours = policy.Hours
		return nil
	}

	if res.Severity != "High" && res.Severity != "Medium" && res.Severity != "Low" {
		return errors.New("модель вернула недопустимый severity")
	}

	if res.Hours <= 0 {
		return errors.New("модель вернула недопустимый срок")
	}

	return nil
}
