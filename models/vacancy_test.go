package models

import (
	"strings"
	"testing"
)

func TestSalaryPhrase(t *testing.T) {
	tests := []struct {
		name string
		vac  Vacancy
		want string
	}{
		{"both bounds", Vacancy{SalaryFrom: 1000, SalaryTo: 2000, Currency: "USD"}, "от 1000 до 2000 USD"},
		{"lower only", Vacancy{SalaryFrom: 1000, Currency: "USD"}, "от 1000 USD"},
		{"upper only", Vacancy{SalaryTo: 2000, Currency: "рублей"}, "до 2000 рублей"},
		{"not specified", Vacancy{}, "Не указана"},
	}

	for _, tt := range tests {
		if got := tt.vac.SalaryPhrase(); got != tt.want {
			t.Errorf("%s: SalaryPhrase() = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizedSalary(t *testing.T) {
	tests := []struct {
		name string
		vac  Vacancy
		want float64
	}{
		{"base currency", Vacancy{SalaryFrom: 50000, CurrencyRate: 1}, 50000},
		{"converted", Vacancy{SalaryFrom: 1000, CurrencyRate: 90}, 90000},
		{"unknown salary", Vacancy{}, 0},
		{"upper bound only", Vacancy{SalaryTo: 2000, CurrencyRate: 90}, 0},
	}

	for _, tt := range tests {
		if got := tt.vac.NormalizedSalary(); got != tt.want {
			t.Errorf("%s: NormalizedSalary() = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestStringBlock(t *testing.T) {
	v := Vacancy{
		Title:        "Go Developer",
		Employer:     "Acme",
		SalaryFrom:   1000,
		Currency:     "USD",
		CurrencyRate: 90,
		Link:         "https://example.com/v/1",
		Town:         "Москва",
		Date:         "01.03.2024",
	}

	block := v.String()
	for _, want := range []string{
		"Go Developer",
		"Работодатель: Acme",
		"зарплата: от 1000 USD",
		"дата публикации: 01.03.2024",
		"ссылка на вакансию https://example.com/v/1",
		"Москва",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("String() missing %q in:\n%s", want, block)
		}
	}
}
