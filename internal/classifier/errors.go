// ABOUTME: Sentinel errors for the classifier package
// ABOUTME: ErrNotTrained is the only error the assistant surfaces to the user
package classifier

import "errors"

var (
	// ErrNotTrained means no model has been built or loaded
	ErrNotTrained = errors.New("classifier model is not trained")
	// ErrNoSamples means the catalog had no patterns to learn from
	ErrNoSamples = errors.New("catalog has no training patterns")
	// ErrUnknownTag means a backend answered with a tag outside the catalog
	ErrUnknownTag = errors.New("classifier returned a tag outside the catalog")
)
