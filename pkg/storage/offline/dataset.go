package offline

import "github.com/witch49/wedding-invitation/pkg/models"

// dataset is the bundled guestbook shown when no backend is reachable,
// ordered newest first.
var dataset = []models.Post{
	{ID: 1735347600000, Timestamp: 1735347600, Name: "수진", Content: "두 분의 앞날에 행복만 가득하길 바랄게요!"},
	{ID: 1735261200000, Timestamp: 1735261200, Name: "민준", Content: "결혼 축하해! 오래오래 예쁘게 살아라~"},
	{ID: 1735174800000, Timestamp: 1735174800, Name: "지혜", Content: "축하드려요. 예식장에서 뵐게요 :)"},
	{ID: 1735088400000, Timestamp: 1735088400, Name: "동현", Content: "드디어 가는구나. 진심으로 축하한다!"},
	{ID: 1735002000000, Timestamp: 1735002000, Name: "은영", Content: "세상에서 제일 예쁜 신부가 되길!"},
	{ID: 1734915600000, Timestamp: 1734915600, Name: "상훈", Content: "축하해요. 행복하게 사세요!"},
	{ID: 1734829200000, Timestamp: 1734829200, Name: "혜림", Content: "청첩장 너무 예쁘다. 결혼 축하해!"},
	{ID: 1734742800000, Timestamp: 1734742800, Name: "준호", Content: "둘이 잘 어울려요. 결혼 축하합니다."},
}
