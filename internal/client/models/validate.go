package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	rules := map[string]validator.Func{
		"notblank": validateNotBlank,
		"day":      validateDay,
		"moment":   validateMoment,
		"category": validateCategory,
		"mood":     validateMood,
	}
	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}
	validate.RegisterStructValidation(validateEntryDraft, EntryDraft{})
}

// Validate checks an outgoing body against its struct tags. Failures wrap
// common.ErrInvalidDraft and name the first offending field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %s failed %q", common.ErrInvalidDraft, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", common.ErrInvalidDraft, err)
}

// validateEntryDraft requires a date on goals and events; only notes may be
// undated.
func validateEntryDraft(sl validator.StructLevel) {
	d := sl.Current().Interface().(EntryDraft)
	if d.Category != CategoryNote && d.Date == nil {
		sl.ReportError(d.Date, "Date", "date", "dated", "")
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateDay(fl validator.FieldLevel) bool {
	_, err := time.Parse(common.DayLayout, fl.Field().String())
	return err == nil
}

func validateMoment(fl validator.FieldLevel) bool {
	switch Moment(fl.Field().String()) {
	case MomentMorning, MomentAfternoon, MomentEvening:
		return true
	}
	return false
}

func validateCategory(fl validator.FieldLevel) bool {
	switch Category(fl.Field().String()) {
	case CategoryNote, CategoryGoal, CategoryEvent:
		return true
	}
	return false
}

func validateMood(fl validator.FieldLevel) bool {
	switch Mood(fl.Field().String()) {
	case MoodGreat, MoodOK, MoodMeh, MoodBad:
		return true
	}
	return false
}
