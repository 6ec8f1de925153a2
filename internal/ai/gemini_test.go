package ai

import "testing"

func TestParseCityData_PlainJSON(t *testing.T) {
	text := `{"description":"Красивый город","places":[{"name":"Музей","price":3000,"link":"http://x"}],"foodPrice":5000,"hotelPrice":8000}`

	got := parseCityData(text)

	if got.Description != "Красивый город" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.FoodPrice != 5000 || got.HotelPrice != 8000 {
		t.Errorf("prices = %v/%v, want 5000/8000", got.FoodPrice, got.HotelPrice)
	}
	if len(got.Places) != 1 || got.Places[0].Name != "Музей" || got.Places[0].Price != 3000 {
		t.Errorf("places = %+v", got.Places)
	}
}

func TestParseCityData_FencedJSON(t *testing.T) {
	text := "Вот данные:\n```json\n{\"description\":\"d\",\"places\":[],\"foodPrice\":100,\"hotelPrice\":200}\n```"

	got := parseCityData(text)
	if got.Description != "d" || got.FoodPrice != 100 || got.HotelPrice != 200 {
		t.Errorf("fenced parse failed: %+v", got)
	}
}

func TestParseCityData_DoubleEncodedDescription(t *testing.T) {
	// Some runs wrap the whole object inside the description field.
	text := `{"description":"{\"description\":\"inner\",\"places\":[],\"foodPrice\":1,\"hotelPrice\":2}"}`

	got := parseCityData(text)
	if got.Description != "inner" || got.FoodPrice != 1 || got.HotelPrice != 2 {
		t.Errorf("double-encoded parse failed: %+v", got)
	}
}

func TestParseCityData_CoercesBadFields(t *testing.T) {
	text := `{"description":"d","places":[{"price":"abc","link":""},{"name":"Ок","price":-5,"link":"http://x"}],"foodPrice":"2000","hotelPrice":-1}`

	got := parseCityData(text)

	if got.FoodPrice != 2000 {
		t.Errorf("string food price not coerced: %v", got.FoodPrice)
	}
	if got.HotelPrice != 0 {
		t.Errorf("negative hotel price not zeroed: %v", got.HotelPrice)
	}

	if len(got.Places) != 2 {
		t.Fatalf("places = %+v", got.Places)
	}
	if got.Places[0].Name != "Без названия" {
		t.Errorf("missing name fallback: %q", got.Places[0].Name)
	}
	if got.Places[0].Link != "#" {
		t.Errorf("empty link fallback: %q", got.Places[0].Link)
	}
	if got.Places[0].Price != 0 || got.Places[1].Price != 0 {
		t.Errorf("bad prices not zeroed: %v / %v", got.Places[0].Price, got.Places[1].Price)
	}
}

func TestParseCityData_Garbage(t *testing.T) {
	got := parseCityData("the model refused to answer")

	if got.Description != "" || got.FoodPrice != 0 || got.HotelPrice != 0 {
		t.Errorf("garbage should produce zero values: %+v", got)
	}
	if got.Places == nil || len(got.Places) != 0 {
		t.Errorf("Places = %v, want empty slice", got.Places)
	}
}
