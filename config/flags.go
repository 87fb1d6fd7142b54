package config

// StringFlag returns the value of a flag of the current command or of any of
// its parents.
func StringFlag(name string) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}

// BoolFlag is StringFlag for boolean flags.
func BoolFlag(name string) bool {
	if ctx == nil {
		return false
	}
	return ctx.Bool(name) || ctx.GlobalBool(name)
}

// Args returns the positional arguments of the current command.
func Args() []string {
	if ctx == nil {
		return nil
	}
	return ctx.Args()
}
