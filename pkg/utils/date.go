package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("data em formato inválido")

// Formatos aceitos nas planilhas de relatórios
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, ErrInvalidDate
	}

	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}

	return nil, ErrInvalidDate
}
