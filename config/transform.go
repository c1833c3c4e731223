package config

func (c *Config) TransformBeforeValidation() error {
	if err := c.Server.TransformBeforeValidation(); err != nil {
		return err
	}
	if err := c.Database.TransformBeforeValidation(); err != nil {
		return err
	}
	if err := c.Auth.TransformBeforeValidation(); err != nil {
		return err
	}
	return c.Probe.TransformBeforeValidation()
}

func (c *Config) TransformAfterValidation() error {
	c.Frames = c.Frames.Sorted()
	return nil
}
