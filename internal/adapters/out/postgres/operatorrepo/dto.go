// Package operatorrepo persists the operator roster with GORM.
package operatorrepo

import (
	"time"

	"scantrack/internal/core/domain/model/operator"
)

type OperatorDTO struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OperatorDTO) TableName() string {
	return "operators"
}

func fromDomain(op operator.Operator) OperatorDTO {
	return OperatorDTO{ID: op.ID(), Name: op.Name()}
}

func toDomain(dto OperatorDTO) (operator.Operator, error) {
	return operator.NewOperator(dto.ID, dto.Name)
}
