package date

// Packing radices, innermost first: year < 2500, month < 13, day < 32.
const (
	yearRadix  = 2500
	monthRadix = 13
	dayRadix   = 32
)

// Compressible reports whether d fits the packed integer envelope:
// a simple precision, no delta, and components within the radices.
func (d DateValue) Compressible() bool {
	return d.Prec.Kind <= After && d.Prec.Kind >= Sure &&
		d.Delta == 0 &&
		d.Day >= 0 && d.Day < dayRadix &&
		d.Month >= 0 && d.Month < monthRadix &&
		d.Year > 0 && d.Year < yearRadix
}

// Compress packs a simple date into one integer:
// (((prec*32 + day)*13 + month)*2500) + year.
func (d DateValue) Compress() (int, bool) {
	if !d.Compressible() {
		return 0, false
	}
	p := int(d.Prec.Kind)
	return ((p*dayRadix+d.Day)*monthRadix+d.Month)*yearRadix + d.Year, true
}

// Uncompress reverses Compress.
func Uncompress(v int) DateValue {
	year := v % yearRadix
	v /= yearRadix
	month := v % monthRadix
	v /= monthRadix
	day := v % dayRadix
	v /= dayRadix
	return DateValue{Day: day, Month: month, Year: year, Prec: Prec(PrecisionKind(v))}
}
