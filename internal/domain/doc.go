// Package domain contains the core entities of the lesson service: the
// difficulty profile a learner requests, the lesson content produced for it,
// and the persisted lesson with its upvote counter. It has no knowledge of
// storage, transport or the language model.
package domain
