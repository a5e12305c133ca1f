package screener

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// JSONSaver — реализация сохранения результатов в JSON-файл
type JSONSaver struct{}

// NewJSONSaver — конструктор для JSONSaver
func NewJSONSaver() *JSONSaver {
	return &JSONSaver{}
}

// Save сериализует результат с отступами и пишет в файл.
func (s *JSONSaver) Save(filename string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize results")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}

	fmt.Printf("💾 Результаты сохранены в %s\n", filename)
	return nil
}
