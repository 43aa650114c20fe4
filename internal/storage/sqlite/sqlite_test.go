package sqlite_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/storage/sqlite"
	"github.com/aanand-mishra/students-desk/internal/types"
	"github.com/smartystreets/goconvey/convey"
)

func newStore(t *testing.T) *sqlite.SQLite {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "students.db"))
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.CreateSchema(context.Background()); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	return store
}

func byID(students []types.Student) map[int64]types.Student {
	m := make(map[int64]types.Student, len(students))
	for _, s := range students {
		m[s.ID] = s
	}
	return m
}

func TestSQLite_AddAndList(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given an empty store", t, func() {
		store := newStore(t)

		convey.Convey("ListStudents returns an empty, non-nil slice", func() {
			students, err := store.ListStudents(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(students, convey.ShouldNotBeNil)
			convey.So(students, convey.ShouldBeEmpty)
		})

		convey.Convey("When Alice is added", func() {
			alice := types.Student{ID: 1, Name: "Alice", Age: 20, Grades: []float64{90.0, 85.0}}
			convey.So(store.AddStudent(ctx, alice), convey.ShouldBeNil)

			convey.Convey("Then she is listed with the same grades", func() {
				students, err := store.ListStudents(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(students, convey.ShouldHaveLength, 1)
				convey.So(students[0], convey.ShouldResemble, alice)
				convey.So(students[0].AverageGrade(), convey.ShouldEqual, 87.5)
			})

			convey.Convey("Then adding the same id again fails", func() {
				err := store.AddStudent(ctx, types.Student{ID: 1, Name: "Mallory", Age: 30})
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, storage.ErrDuplicateStudent), convey.ShouldBeTrue)

				students, err := store.ListStudents(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(students, convey.ShouldHaveLength, 1)
				convey.So(students[0].Name, convey.ShouldEqual, "Alice")
			})
		})

		convey.Convey("A student without grades round-trips as an empty list", func() {
			convey.So(store.AddStudent(ctx, types.Student{ID: 5, Name: "Eve", Age: 19}), convey.ShouldBeNil)

			students, err := store.ListStudents(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(students, convey.ShouldHaveLength, 1)
			convey.So(students[0].Grades, convey.ShouldBeEmpty)
			convey.So(students[0].AverageGrade(), convey.ShouldEqual, 0.0)
		})

		convey.Convey("Names with quotes are stored verbatim", func() {
			name := `O'Brien "Bob"; DROP TABLE students; --`
			convey.So(store.AddStudent(ctx, types.Student{ID: 9, Name: name, Age: 40}), convey.ShouldBeNil)

			students, err := store.ListStudents(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(students, convey.ShouldHaveLength, 1)
			convey.So(students[0].Name, convey.ShouldEqual, name)
		})
	})
}

func TestSQLite_GradesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	want := map[int64][]float64{
		1: {0.1, 0.2, 0.30000000000000004},
		2: {100, 99.99, 0},
		3: {1e-9, 12345.678901234},
	}
	for id, grades := range want {
		if err := store.AddStudent(ctx, types.Student{ID: id, Name: "s", Age: 1, Grades: grades}); err != nil {
			t.Fatalf("AddStudent(%d): %v", id, err)
		}
	}

	students, err := store.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}

	got := byID(students)
	for id, grades := range want {
		s, ok := got[id]
		if !ok {
			t.Fatalf("student %d missing", id)
		}
		if len(s.Grades) != len(grades) {
			t.Fatalf("student %d: expected %d grades, got %d", id, len(grades), len(s.Grades))
		}
		for i := range grades {
			if s.Grades[i] != grades[i] {
				t.Errorf("student %d grade %d: expected %v, got %v", id, i, grades[i], s.Grades[i])
			}
		}
	}
}

func TestSQLite_RejectsNonFiniteGrades(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a store holding Alice", t, func() {
		store := newStore(t)
		alice := types.Student{ID: 1, Name: "Alice", Age: 20, Grades: []float64{90, 85}}
		convey.So(store.AddStudent(ctx, alice), convey.ShouldBeNil)

		convey.Convey("Infinite and NaN grades are not written", func() {
			for i, g := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
				err := store.AddStudent(ctx, types.Student{ID: int64(i + 2), Name: "Bad", Age: 20, Grades: []float64{g}})
				convey.So(errors.Is(err, types.ErrNonFiniteGrade), convey.ShouldBeTrue)
			}

			convey.Convey("And the table still lists", func() {
				students, err := store.ListStudents(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(students, convey.ShouldHaveLength, 1)
				convey.So(students[0], convey.ShouldResemble, alice)
			})
		})
	})
}

func TestSQLite_Remove(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a store with two students", t, func() {
		store := newStore(t)
		convey.So(store.AddStudent(ctx, types.Student{ID: 1, Name: "Alice", Age: 20}), convey.ShouldBeNil)
		convey.So(store.AddStudent(ctx, types.Student{ID: 2, Name: "Bob", Age: 21}), convey.ShouldBeNil)

		convey.Convey("Removing one leaves only the other", func() {
			removed, err := store.RemoveStudent(ctx, 1)
			convey.So(err, convey.ShouldBeNil)
			convey.So(removed, convey.ShouldBeTrue)

			students, err := store.ListStudents(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(students, convey.ShouldHaveLength, 1)
			convey.So(students[0].ID, convey.ShouldEqual, int64(2))
		})

		convey.Convey("Removing an unknown id is a no-op", func() {
			removed, err := store.RemoveStudent(ctx, 42)
			convey.So(err, convey.ShouldBeNil)
			convey.So(removed, convey.ShouldBeFalse)

			students, err := store.ListStudents(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(students, convey.ShouldHaveLength, 2)
		})
	})
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "students.db")

	first, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	if err := first.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	if err := first.AddStudent(ctx, types.Student{ID: 3, Name: "Carol", Age: 22, Grades: []float64{70}}); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	first.Close()

	second, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("sqlite.New (reopen): %v", err)
	}
	defer second.Close()

	// Running CreateSchema again must not drop or fail on the existing table.
	if err := second.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema (second run): %v", err)
	}

	students, err := second.ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 1 || students[0].Name != "Carol" {
		t.Errorf("expected Carol to survive a reopen, got %+v", students)
	}
}
