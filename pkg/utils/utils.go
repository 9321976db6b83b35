package utils

import (
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"multibagger-scanner/pkg/logger"
)

// TimeNowUTC returns the current time in UTC. All persisted timestamps use it.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// ToPointer returns a pointer to a copy of v.
func ToPointer[T any](v T) *T {
	return &v
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RoundPtr rounds a nullable value, keeping nil as nil.
func RoundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := Round(*v, places)
	return &r
}

// GoSafe runs fn in a goroutine and logs any panic it raises to log.
func GoSafe(log *logger.Logger, fn func()) {
	if log == nil {
		log = logger.NewNop()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Recovered from panic in background task",
					logger.Field("panic", r),
					logger.StringField("stack", string(debug.Stack())))
			}
		}()
		fn()
	}()
}

// SafeCall runs fn and converts a panic into an error.
func SafeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
