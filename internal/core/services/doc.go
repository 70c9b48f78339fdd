// Package services implements the driving port interfaces.
// Services contain the detection engine (classify, aggregate, project)
// and orchestrate calls to driven ports (page sources, archive, config).
package services
