package service

import (
	"bytes"
	"encoding/json"
	"testing"

	evdomain "callsift/internal/services/events/domain"
)

func snapWith(subs []evdomain.SubscriberRecord) *evdomain.Snapshot {
	return evdomain.NewSnapshot("op-1", 2, nil, subs)
}

func TestCommonDevices_SharedHandsetScenario(t *testing.T) {
	t.Parallel()

	// three lines tied to D1, a fourth alone on D2
	snap := snapWith([]evdomain.SubscriberRecord{
		{Line: "5321110001", DeviceID: "111111111111111"},
		{Line: "5321110002", DeviceID: "111111111111111"},
		{Line: "5321110003", DeviceID: "111111111111111"},
		{Line: "5321110004", DeviceID: "222222222222222"},
	})

	groups := commonDevices(snap)
	if len(groups) != 1 {
		t.Fatalf("groups = %+v, want exactly one", groups)
	}
	g := groups[0]
	if g.Key != "111111111111111" || g.DistinctCount != 3 {
		t.Fatalf("group = %+v", g)
	}
	want := []string{"5321110001", "5321110002", "5321110003"}
	if len(g.Numbers) != 3 || g.Numbers[0] != want[0] || g.Numbers[1] != want[1] || g.Numbers[2] != want[2] {
		t.Fatalf("numbers = %v, want %v", g.Numbers, want)
	}
}

func TestLinkage_Minimality(t *testing.T) {
	t.Parallel()

	// single-line keys never appear, regardless of how often they were seen
	recs := []evdomain.SubscriberRecord{}
	for i := 0; i < 50; i++ {
		recs = append(recs, evdomain.SubscriberRecord{
			Line: "5321110001", DeviceID: "111111111111111",
			Name: "mehmet ozturk", NationalID: "12345678901",
		})
	}
	snap := snapWith(recs)

	if g := commonDevices(snap); len(g) != 0 {
		t.Fatalf("devices: %+v", g)
	}
	if g := commonNames(snap); len(g) != 0 {
		t.Fatalf("names: %+v", g)
	}
	if g := commonIDs(snap); len(g) != 0 {
		t.Fatalf("ids: %+v", g)
	}
}

func TestCommonNames_RequiresValidNationalID(t *testing.T) {
	t.Parallel()

	snap := snapWith([]evdomain.SubscriberRecord{
		// same folded name on two lines, but only one pair carries valid ids
		{Line: "5321110001", Name: "Mehmet ÖZTÜRK", NationalID: "12345678901"},
		{Line: "5321110002", Name: "mehmet ozturk", NationalID: "12345678902"},
		{Line: "5321110003", Name: "Ayşe Kaya", NationalID: "bad"},
		{Line: "5321110004", Name: "ayse kaya", NationalID: ""},
	})

	groups := commonNames(snap)
	if len(groups) != 1 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].Key != "mehmet ozturk" || groups[0].DistinctCount != 2 {
		t.Fatalf("group = %+v", groups[0])
	}
}

func TestCommonIDs_LabelAndOrdering(t *testing.T) {
	t.Parallel()

	snap := snapWith([]evdomain.SubscriberRecord{
		{Line: "5321110001", Name: "", NationalID: "22222222222"},
		{Line: "5321110002", Name: "ali veli", NationalID: "22222222222"},
		{Line: "5321110003", NationalID: "11111111111"},
		{Line: "5321110004", NationalID: "11111111111"},
		{Line: "5321110005", NationalID: "11111111111"},
	})

	groups := commonIDs(snap)
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	// larger distinct count first; the pair group carries the first non-empty name
	if groups[0].Key != "11111111111" || groups[0].DistinctCount != 3 {
		t.Fatalf("ordering wrong: %+v", groups)
	}
	if groups[1].Key != "22222222222" || groups[1].Label != "ali veli" {
		t.Fatalf("label wrong: %+v", groups[1])
	}
}

func TestLinkage_OrderingTieByKey(t *testing.T) {
	t.Parallel()

	snap := snapWith([]evdomain.SubscriberRecord{
		{Line: "1111111111", DeviceID: "999999999999999"},
		{Line: "2222222222", DeviceID: "999999999999999"},
		{Line: "3333333333", DeviceID: "111111111111111"},
		{Line: "4444444444", DeviceID: "111111111111111"},
	})

	groups := commonDevices(snap)
	if len(groups) != 2 || groups[0].Key != "111111111111111" || groups[1].Key != "999999999999999" {
		t.Fatalf("tie ordering wrong: %+v", groups)
	}
}

func TestLinkage_Idempotent(t *testing.T) {
	t.Parallel()

	snap := snapWith([]evdomain.SubscriberRecord{
		{Line: "1111111111", DeviceID: "999999999999999"},
		{Line: "2222222222", DeviceID: "999999999999999"},
		{Line: "3333333333", DeviceID: "111111111111111"},
		{Line: "4444444444", DeviceID: "111111111111111"},
	})

	a, _ := json.Marshal(commonDevices(snap))
	b, _ := json.Marshal(commonDevices(snap))
	if !bytes.Equal(a, b) {
		t.Fatalf("linkage differs across identical runs:\n%s\n%s", a, b)
	}
}
