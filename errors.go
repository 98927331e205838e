package papergen

import "errors"

// Failure taxonomy for the batch pipeline. Failures are isolated per plan;
// only ErrPlanningFailed is fatal to a whole batch.
var (
	// ErrPlanningFailed means the planning call failed or returned no
	// blueprints. The batch yields zero questions.
	ErrPlanningFailed = errors.New("planning failed: no blueprints produced")

	// ErrGenerationFailed means no usable draft survived the attempt budget
	// for a critical pattern. The plan contributes nothing to the batch.
	ErrGenerationFailed = errors.New("generation failed: no usable draft")

	// ErrTranslationFailed means the translation call failed. The question
	// is dropped from the batch; translation is never retried.
	ErrTranslationFailed = errors.New("translation failed")
)
