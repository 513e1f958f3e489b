package eventbus

// DefaultCaseTopic 은 설정에 토픽이 없을 때 쓰는 케이스 이벤트 토픽이다.
var DefaultCaseTopic = NewTopic("legal-timeline.case.events")
