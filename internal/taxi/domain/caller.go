package domain

// CallerIdentity is the signed-in driver performing an operation. A nil
// *CallerIdentity means nobody is signed in.
type CallerIdentity struct {
	DriverID string `json:"id"`
	Username string `json:"username"`
}

func (c *CallerIdentity) Authenticated() bool {
	return c != nil && c.DriverID != ""
}
