// Package ingest пакетная загрузка сырых записей в реестр: сборка
// канонических сущностей и последовательная запись в хранилище.
package ingest

import (
	"fmt"
	"log"

	"promreestr/mapping"
)

// Creator интерфейс коллаборатора-хранилища: создание записи вида kind
// с возвратом присвоенного идентификатора
type Creator interface {
	Create(kind string, fields map[string]interface{}) (int64, map[string]interface{}, error)
}

// Service пакетный загрузчик. Записи обрабатываются строго по одной:
// сначала организация, затем ее зависимые записи с проставленным
// organization_id. Состояния между записями нет.
type Service struct {
	store     Creator
	assembler *mapping.Assembler
}

// NewService создает сервис загрузки
func NewService(store Creator, assembler *mapping.Assembler) *Service {
	return &Service{store: store, assembler: assembler}
}

// RecordResult итог обработки одной сырой записи
type RecordResult struct {
	// Index позиция записи в пакете (с нуля)
	Index int `json:"index"`
	// OrganizationID идентификатор созданной организации (0 при ошибке)
	OrganizationID int64 `json:"organization_id,omitempty"`
	// OrganizationName наименование для человекочитаемого отчета
	OrganizationName string `json:"organization_name,omitempty"`
	// Created количество созданных зависимых записей по видам
	Created map[string]int `json:"created,omitempty"`
	// Error ошибка валидации или записи организации; запись не обработана
	Error string `json:"error,omitempty"`
	// DependentErrors ошибки записи отдельных зависимых записей;
	// уже записанные соседние записи не откатываются
	DependentErrors []string `json:"dependent_errors,omitempty"`
}

// Failed обработка записи не дала организации
func (r *RecordResult) Failed() bool {
	return r.Error != ""
}

// BatchReport итог обработки пакета
type BatchReport struct {
	Total     int            `json:"total"`
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Results   []RecordResult `json:"results"`
}

// ProcessBatch обрабатывает пакет сырых записей. Ошибка записи K
// не мешает обработке записей K+1..N: каждая запись получает
// независимый итог.
func (s *Service) ProcessBatch(records []mapping.RawRecord) *BatchReport {
	report := &BatchReport{Total: len(records)}
	for i, record := range records {
		result := s.ProcessRecord(record)
		result.Index = i
		if result.Failed() {
			report.Failed++
			log.Printf("Запись %d/%d пропущена: %s", i+1, len(records), result.Error)
		} else {
			report.Processed++
		}
		report.Results = append(report.Results, *result)
	}
	return report
}

// ProcessRecord обрабатывает одну сырую запись: сборка, запись
// организации, затем запись зависимых с ее идентификатором.
// Транзакционности нет: отказ зависимой записи фиксируется в итоге,
// но остальные зависимые записи все равно записываются.
func (s *Service) ProcessRecord(record mapping.RawRecord) *RecordResult {
	result := &RecordResult{Created: make(map[string]int)}

	assembled, err := s.assembler.Assemble(record)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	orgID, stored, err := s.store.Create("organizations", assembled.Organization)
	if err != nil {
		result.Error = fmt.Sprintf("организация не создана: %v", err)
		return result
	}
	result.OrganizationID = orgID
	if name, ok := stored["name"].(string); ok {
		result.OrganizationName = name
	}

	for _, dep := range assembled.Dependents {
		dep.Fields["organization_id"] = orgID
		if _, _, err := s.store.Create(dep.Kind, dep.Fields); err != nil {
			result.DependentErrors = append(result.DependentErrors,
				fmt.Sprintf("%s: %v", dep.Kind, err))
			continue
		}
		result.Created[dep.Kind]++
	}

	return result
}
