package core

import (
	"testing"

	"hrconsole/internal/domain/auth"
)

func sampleEmployee() *Employee {
	return &Employee{
		Ownership: auth.Ownership{CreatedBy: "hr-1"},
		UserID:    "u-self",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
	}
}

func TestFilterEmployeeFieldsElevated(t *testing.T) {
	emp := sampleEmployee()
	FilterEmployeeFields(emp, &auth.Actor{ID: "boss", Role: auth.RoleElevated})
	if emp.Email == "" || emp.Phone == "" {
		t.Fatal("elevated actor should retain contact fields")
	}
}

func TestFilterEmployeeFieldsSelfAndCreator(t *testing.T) {
	for _, id := range []string{"u-self", "hr-1"} {
		emp := sampleEmployee()
		FilterEmployeeFields(emp, &auth.Actor{ID: id, Role: auth.RoleStandard})
		if emp.Email == "" || emp.Phone == "" {
			t.Fatalf("%s should retain contact fields", id)
		}
	}
}

func TestFilterEmployeeFieldsOther(t *testing.T) {
	emp := sampleEmployee()
	FilterEmployeeFields(emp, &auth.Actor{ID: "someone", Role: auth.RoleStandard})
	if emp.Email != "" || emp.Phone != "" {
		t.Fatal("other actors should not see contact fields")
	}
	if emp.DisplayName() != "Ada Lovelace" {
		t.Fatalf("unexpected display name %q", emp.DisplayName())
	}

	emp = sampleEmployee()
	FilterEmployeeFields(emp, nil)
	if emp.Email != "" {
		t.Fatal("anonymous callers should not see contact fields")
	}
}
