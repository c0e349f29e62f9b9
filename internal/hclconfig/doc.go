// Package hclconfig loads the optional HCL configuration file of the
// converter. The file can select the output style, enable strict size
// checking, point at template overrides and customize generated names.
//
// Expressions in the file are evaluated with these variables:
//
//	program.name, program.version   identity of the running tool
//	input.path, input.name          the map being converted
//
// and the functions upper, lower and format.
package hclconfig
