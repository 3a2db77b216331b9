/*
Package data provides the containers that flow between pipeline steps.

A Container carries paired data inputs and expected outputs through a
pipeline run, along with per-sample IDs and optional named sub-containers
holding auxiliary data sources.

NDArray is a small n-dimensional float64 array used for numeric sample
values. It supports the shape operations the zipping steps rely on:
trailing-axis expansion, broadcasting, and concatenation along the last
axis.

	headers := data.New(headerInputs, headerOutputs)
	frames := data.New(frameInputs, frameOutputs)
	frames.AddSub("header_values", headers)

See the steps package for the steps that consume these containers.
*/
package data
