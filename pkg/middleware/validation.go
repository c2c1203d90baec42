package middleware

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once

	barcodePattern     = regexp.MustCompile(`^\d{16}$`)
	orderNumberPattern = regexp.MustCompile(`^\d{1,10}$`)
	shoeSizePattern    = regexp.MustCompile(`^\d{1,2}(\.\d)?$`)
	stagePattern       = regexp.MustCompile(`^(charge|stage[1-6])$`)
)

// InitValidator registers domain validators with gin's binding engine. Safe
// to call more than once.
func InitValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = v.RegisterValidation("barcode16", func(fl validator.FieldLevel) bool {
			return barcodePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("ordernumber", func(fl validator.FieldLevel) bool {
			return orderNumberPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("shoesize", func(fl validator.FieldLevel) bool {
			return shoeSizePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("stagename", func(fl validator.FieldLevel) bool {
			return stagePattern.MatchString(fl.Field().String())
		})
	})
}
