package model

// Assignment is a (staff, slot, paired) triple, per spec §3. Paired is true
// iff the same date's night slot holds two staff members simultaneously;
// daytime assignments always have Paired = false.
type Assignment struct {
	StaffID string
	Slot    Slot
	Paired  bool
}
