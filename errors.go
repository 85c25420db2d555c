package edm

import "errors"

// Sentinel errors for the EDM engine. Callers branch with errors.Is;
// context is added by wrapping with fmt.Errorf("...: %w", ErrX) at the
// call site, never baked into the sentinel text itself.
var (
	// ErrInvalidParam covers negative E, tau <= 0, k_NN < 0 with S-Map,
	// lib/pred ranges out of [0,N), and S-Map called with an explicit
	// k <= E+1.
	ErrInvalidParam = errors.New("edm: invalid parameter")

	// ErrShapeMismatch covers library/target row mismatches and
	// inconsistent embedding widths.
	ErrShapeMismatch = errors.New("edm: shape mismatch")

	// ErrLibraryTooSmall is returned when fewer than k usable neighbors
	// exist for some prediction row.
	ErrLibraryTooSmall = errors.New("edm: library too small for k neighbors")

	// ErrSingularSystem marks an S-Map row whose weighted design matrix
	// has no singular value above the significance threshold. It is
	// reported in the result's Warnings, not returned as a fatal error;
	// the sentinel exists so callers can classify that warning.
	ErrSingularSystem = errors.New("edm: singular S-Map system")

	// ErrInsufficientData is returned by error-stats computation when
	// fewer than 2 finite (observed, predicted) pairs remain.
	ErrInsufficientData = errors.New("edm: insufficient data for statistics")

	// ErrBadJacobianPair marks a requested Jacobian pair with index 0
	// (the bias term) or an out-of-range coefficient index.
	ErrBadJacobianPair = errors.New("edm: invalid jacobian pair")
)
