package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// Amount — денежная сумма из бэкенда. Decimal поля приходят то числом, то строкой ("50.00").
type Amount float64

// UnmarshalJSON принимает и число, и строку с числом.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		data = data[1 : len(data)-1]
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("models: некорректная сумма %q: %w", string(data), err)
	}
	*a = Amount(v)
	return nil
}

// Float64 возвращает значение как float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

// FormatRate форматирует ставку как "$50 USD"; без ставки возвращает "Not set".
func FormatRate(rate *Amount, currency string) string {
	if rate == nil || *rate == 0 {
		return "Not set"
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return "$" + strconv.FormatFloat(rate.Float64(), 'f', -1, 64) + " " + currency
}
