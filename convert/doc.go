// Package convert feeds JSON and YAML documents into a dsl.Sequence and
// renders Ion values back as JSON.
//
// JSON integers become Ion ints, numbers with a fraction and no exponent
// become decimals and numbers with an exponent become floats. YAML scalars
// are resolved by their tag; a local tag such as !point becomes an
// annotation on the value.
package convert
