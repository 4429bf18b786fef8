package model

import (
	"fmt"
	"sync"

	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 向gin的校验器注册自定义规则，重复调用无副作用
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("profile", validateProfile)
	})
	return err
}

// validateProfile 配置ID必须已注册
func validateProfile(fl validator.FieldLevel) bool {
	return reading.IsValidProfile(fl.Field().String())
}
