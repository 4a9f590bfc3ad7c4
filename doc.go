// Package paramgo exposes linear support vector regression to automated model
// selection frameworks.
//
// A search algorithm samples a configuration from the component's search
// space, the component parses it once into typed parameters, and Fit / Predict
// delegate to a liblinear-style solver over gonum matrices.
//
// # Packages
//
//   - components/regression: the LibLinearSVR component and the regressor registry
//   - components: capability descriptors and dataset properties
//   - configspace: hyperparameters, conditions, sampling and YAML configurations
//   - svm: the LinearSVR trainer (dual coordinate descent and primal L-BFGS)
//   - preprocessing: StandardScaler for estimators that prefer scaled data
//   - metrics: regression metrics
//   - pkg/errors, pkg/log: structured errors and zerolog-based logging
//
// # Quick Start
//
//	cs := regression.LibLinearSVRSearchSpace(nil)
//	svr, err := regression.NewLibLinearSVRFromConfiguration(cs.DefaultConfiguration())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svr.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := svr.Predict(XTest)
//
// # Performance
//
// Prediction runs in parallel for inputs with more than 1000 rows. Inputs that
// implement mat.RowNonZeroDoer are read without visiting their zero entries.
package paramgo
