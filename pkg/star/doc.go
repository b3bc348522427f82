// Package star renders the rating star icon as SVG markup or as a PNG.
package star
