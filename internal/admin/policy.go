package admin

// PaymentFieldsRequired reports whether the QR code and UPI ID become
// mandatory for the current working copy. An event is paid when either fee is
// above zero; NaN fees never count as paid.
func PaymentFieldsRequired(f *Form) bool {
	return f.RegistrationFees.Paid()
}

// ApplyFeeChange runs after every change to the solo fee. When the fee drops
// to zero the recorded QR code error is cleared immediately so the field does
// not stay flagged for a now-optional value. No other error key is touched
// and no re-validation happens here; the full rules run again on submit.
func ApplyFeeChange(f *Form, errs FieldErrors) {
	if f.RegistrationFees.Solo == 0 {
		errs.Clear(FieldQRCode)
	}
}
