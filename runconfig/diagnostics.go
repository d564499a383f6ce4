package runconfig

// Note reports an informational message, attributed to the caller. Suppressed in quiet mode.
func (c *Controller) Note(message string) {
	c.diag.Helper()
	c.diag.Note(message)
}

func (c *Controller) Notef(format string, args ...interface{}) {
	c.diag.Helper()
	c.diag.Notef(format, args...)
}

// Warning reports a soft problem. The output is suppressed in quiet mode; the count is not.
func (c *Controller) Warning(message string) {
	c.diag.Helper()
	c.diag.Warning(message)
}

func (c *Controller) Warningf(format string, args ...interface{}) {
	c.diag.Helper()
	c.diag.Warningf(format, args...)
}

// Error reports a problem that does not stop the run.
func (c *Controller) Error(message string) {
	c.diag.Helper()
	c.diag.Error(message)
}

func (c *Controller) Errorf(format string, args ...interface{}) {
	c.diag.Helper()
	c.diag.Errorf(format, args...)
}

// Fatal reports a message and exits with status 2. It never returns.
func (c *Controller) Fatal(message string) {
	c.diag.Helper()
	c.diag.Fatal(message)
}

func (c *Controller) Fatalf(format string, args ...interface{}) {
	c.diag.Helper()
	c.diag.Fatalf(format, args...)
}

// ErrorCount is the number of errors reported so far. It never decreases.
func (c *Controller) ErrorCount() int { return c.diag.ErrorCount() }

// WarningCount is the number of warnings reported so far, including suppressed ones.
func (c *Controller) WarningCount() int { return c.diag.WarningCount() }
