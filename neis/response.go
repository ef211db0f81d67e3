package neis

import (
	"fmt"
	"strings"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
)

// Result codes of the NEIS open API.
const (
	CodeOK     = "INFO-000"
	CodeNoData = "INFO-200"
)

// Response is the body of a mealServiceDietInfo call.
//
// The first section holds the head (count and result code), the second one the rows.
type Response struct {
	MealServiceDietInfo []Section `json:"mealServiceDietInfo"`
}

type Section struct {
	Head []Head `json:"head,omitempty"`
	Row  []Row  `json:"row,omitempty"`
}

type Head struct {
	ListTotalCount *int    `json:"list_total_count,omitempty"`
	Result         *Result `json:"RESULT,omitempty"`
}

type Result struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// Row is one meal slot. Fields are pointers so that absent keys can be told apart from empty values.
type Row struct {
	OfficeCode  *string `json:"ATPT_OFCDC_SC_CODE"`
	SchoolCode  *string `json:"SD_SCHUL_CODE"`
	SchoolName  *string `json:"SCHUL_NM"`
	MealCode    *string `json:"MMEAL_SC_CODE"`
	MealName    *string `json:"MMEAL_SC_NM"`
	ServiceDate *string `json:"MLSV_YMD"`
	Dishes      *string `json:"DDISH_NM"`
	Origin      *string `json:"ORPLC_INFO"`
	Calories    *string `json:"CAL_INFO"`
	Nutrients   *string `json:"NTR_INFO"`
}

// ServiceError is a result code other than success or no data, like an invalid key.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("meal service answered %s: %s", e.Code, e.Message)
}

// resultError maps a result code to an error, nil for success.
func resultError(code, message string) error {
	switch code {
	case CodeOK:
		return nil
	case CodeNoData:
		return fmt.Errorf("%w: %s", schoolmeal.ErrNoData, message)
	default:
		return &ServiceError{Code: code, Message: message}
	}
}

// Rows returns the meal rows, or ErrMissingField when the response has none.
func (r *Response) Rows() ([]Row, error) {
	if len(r.MealServiceDietInfo) < 2 {
		return nil, fmt.Errorf("%w: mealServiceDietInfo has %d sections, want 2", schoolmeal.ErrMissingField, len(r.MealServiceDietInfo))
	}
	rows := r.MealServiceDietInfo[1].Row
	if rows == nil {
		return nil, fmt.Errorf("%w: mealServiceDietInfo[1].row", schoolmeal.ErrMissingField)
	}
	return rows, nil
}

// Meal validates the row and converts it.
func (row Row) Meal(on date.Date) (schoolmeal.Meal, error) {
	var missing []string
	if row.MealName == nil {
		missing = append(missing, "MMEAL_SC_NM")
	}
	if row.Dishes == nil {
		missing = append(missing, "DDISH_NM")
	}
	if row.Nutrients == nil {
		missing = append(missing, "NTR_INFO")
	}
	if len(missing) > 0 {
		return schoolmeal.Meal{}, fmt.Errorf("%w: %s", schoolmeal.ErrMissingField, strings.Join(missing, ", "))
	}

	m := schoolmeal.NewMeal(on, schoolmeal.Slot(deref(row.MealCode)), *row.MealName, *row.Dishes, *row.Nutrients)
	m.Calories = deref(row.Calories)
	return m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
