package config

type WorkerKeyStruct struct {
	PersistAssessmentResultsQueue string
	PersistProctoringEventsQueue  string
}

var WorkerKey = &WorkerKeyStruct{
	PersistAssessmentResultsQueue: "persist_assessment_results_queue",
	PersistProctoringEventsQueue:  "persist_proctoring_events_queue",
}
