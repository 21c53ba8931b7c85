// Package mocks provides hand-written mocks with function fields and call
// tracking for the service-level interfaces. Store interface mocks are
// generated by mockgen into the store subpackage.
//
//	gen := &mocks.MockLessonGenerator{
//	    GenerateLessonFn: func(ctx context.Context, p domain.DifficultyProfile) (*domain.Lesson, error) {
//	        return lesson, nil
//	    },
//	}
package mocks
