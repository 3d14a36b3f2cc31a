package main

// optionalValue is a flag that may be given bare ("--playlist") or with a
// value ("--playlist=foo.csv"). The flag package treats it as boolean, so
// "--playlist foo.csv" leaves foo.csv as a positional argument for the
// caller to pick up.
type optionalValue struct {
	set   bool
	value string
}

func (o *optionalValue) String() string {
	if o == nil {
		return ""
	}
	return o.value
}

func (o *optionalValue) Set(s string) error {
	o.set = true
	if s != "true" {
		o.value = s
	}
	return nil
}

func (o *optionalValue) IsBoolFlag() bool { return true }
