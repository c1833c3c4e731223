package database

import (
	"github.com/ignisVeneficus/bistro/config/validate"
)

func (d *DatabaseConfig) TransformBeforeValidation() error {
	if d.Port == 0 {
		d.Port = 3306
	}
	return nil
}

func (d DatabaseConfig) Validate(v *validate.ValidationErrors, path string) {
	validate.RequireString(v, path+"/host", d.Host)

	validate.RequireRange(v, path+"/port", d.Port, 1, 65535)

	validate.RequireString(v, path+"/name", d.Name)
	validate.RequireString(v, path+"/user", d.User)
	validate.RequireSecret(v, path+"/password", d.Password)
}
