package contacts

import "contacts/internal/models"

// ReferenceContacts returns the sample contacts used to populate an empty
// CMS. A new slice is returned on every call.
func ReferenceContacts() []models.ContactMutation {
	return []models.ContactMutation{
		{
			Avatar:  models.String("https://sessionize.com/image/124e-400o400o2-wHVdAuNaxi8KJrgtN3ZKci.jpg"),
			First:   models.String("Shruti"),
			Last:    models.String("Kapoor"),
			Twitter: models.String("@shrutikapoor08"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/1940-400o400o2-Enh9dnYmrLYhJSTTPSw3MH.jpg"),
			First:   models.String("Glenn"),
			Last:    models.String("Reyes"),
			Twitter: models.String("@glnnrys"),
		},
		{
			Avatar: models.String("https://sessionize.com/image/9273-400o400o2-3tyrUE3HjsCHJLU5aUJCja.jpg"),
			First:  models.String("Ryan"),
			Last:   models.String("Florence"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/d14d-400o400o2-pyB229HyFPCnUcZhHf3kWS.png"),
			First:   models.String("Oscar"),
			Last:    models.String("Newman"),
			Twitter: models.String("@__oscarnewman"),
		},
		{
			Avatar: models.String("https://sessionize.com/image/fd45-400o400o2-fw91uCdGU9hFP334dnyVCr.jpg"),
			First:  models.String("Michael"),
			Last:   models.String("Jackson"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/b07e-400o400o2-KgNRF3S9sD5ZR4UsG7hG4g.jpg"),
			First:   models.String("Christopher"),
			Last:    models.String("Chedeau"),
			Twitter: models.String("@Vjeux"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/262f-400o400o2-UBPQueK3fayaCmsyUc1Ljf.jpg"),
			First:   models.String("Cameron"),
			Last:    models.String("Matheson"),
			Twitter: models.String("@cmatheson"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/820b-400o400o2-Ja1KDrBAu5NzYTPLSC3GW8.jpg"),
			First:   models.String("Brooks"),
			Last:    models.String("Lybrand"),
			Twitter: models.String("@BrooksLybrand"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/df38-400o400o2-JwbChVUj6V7DwZMc9vJEHc.jpg"),
			First:   models.String("Alex"),
			Last:    models.String("Anderson"),
			Twitter: models.String("@ralex1993"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/5578-400o400o2-BMT43t5kd2U1XstaNnM6Ax.jpg"),
			First:   models.String("Kent C."),
			Last:    models.String("Dodds"),
			Twitter: models.String("@kentcdodds"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/c9d5-400o400o2-Sri5qnQmscaJXVB8m3VBgf.jpg"),
			First:   models.String("Nevi"),
			Last:    models.String("Shah"),
			Twitter: models.String("@nevikashah"),
		},
		{
			Avatar: models.String("https://sessionize.com/image/2694-400o400o2-MYYTsnszbLKTzyqJV17w2q.png"),
			First:  models.String("Andrew"),
			Last:   models.String("Petersen"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/907a-400o400o2-9TM2CCmvrw6ttmJiTw4Lz8.jpg"),
			First:   models.String("Scott"),
			Last:    models.String("Smerchek"),
			Twitter: models.String("@smerchek"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/08be-400o400o2-WtYGFFR1ZUJHL9tKyVBNPV.jpg"),
			First:   models.String("Giovanni"),
			Last:    models.String("Benussi"),
			Twitter: models.String("@giovannibenussi"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/f814-400o400o2-n2ua5nM9qwZA2hiGdr1T7N.jpg"),
			First:   models.String("Igor"),
			Last:    models.String("Minar"),
			Twitter: models.String("@IgorMinar"),
		},
		{
			Avatar: models.String("https://sessionize.com/image/fb82-400o400o2-LbvwhTVMrYLDdN3z4iEFMp.jpeg"),
			First:  models.String("Brandon"),
			Last:   models.String("Kish"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/fcda-400o400o2-XiYRtKK5Dvng5AeyC8PiUA.png"),
			First:   models.String("Arisa"),
			Last:    models.String("Fukuzaki"),
			Twitter: models.String("@arisa_dev"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/c8c3-400o400o2-PR5UsgApAVEADZRixV4H8e.jpeg"),
			First:   models.String("Alexandra"),
			Last:    models.String("Spalato"),
			Twitter: models.String("@alexadark"),
		},
		{
			Avatar: models.String("https://sessionize.com/image/7594-400o400o2-hWtdCjbdFdLgE2vEXBJtyo.jpg"),
			First:  models.String("Cat"),
			Last:   models.String("Johnson"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/5636-400o400o2-TWgi8vELMFoB3hB9uPw62d.jpg"),
			First:   models.String("Ashley"),
			Last:    models.String("Narcisse"),
			Twitter: models.String("@_darkfadr"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/6aeb-400o400o2-Q5tAiuzKGgzSje9ZsK3Yu5.JPG"),
			First:   models.String("Edmund"),
			Last:    models.String("Hung"),
			Twitter: models.String("@_edmundhung"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/30f1-400o400o2-wJBdJ6sFayjKmJycYKoHSe.jpg"),
			First:   models.String("Clifford"),
			Last:    models.String("Fajardo"),
			Twitter: models.String("@cliffordfajard0"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/6faa-400o400o2-amseBRDkdg7wSK5tjsFDiG.jpg"),
			First:   models.String("Erick"),
			Last:    models.String("Tamayo"),
			Twitter: models.String("@ericktamayo"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/feba-400o400o2-R4GE7eqegJNFf3cQ567obs.jpg"),
			First:   models.String("Paul"),
			Last:    models.String("Bratslavsky"),
			Twitter: models.String("@codingthirty"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/c315-400o400o2-spjM5A6VVfVNnQsuwvX3DY.jpg"),
			First:   models.String("Pedro"),
			Last:    models.String("Cattori"),
			Twitter: models.String("@pcattori"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/eec1-400o400o2-HkvWKLFqecmFxLwqR9KMRw.jpg"),
			First:   models.String("Andre"),
			Last:    models.String("Landgraf"),
			Twitter: models.String("@AndreLandgraf94"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/c73a-400o400o2-4MTaTq6ftC15hqwtqUJmTC.jpg"),
			First:   models.String("Monica"),
			Last:    models.String("Powell"),
			Twitter: models.String("@indigitalcolor"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/cef7-400o400o2-KBZUydbjfkfGACQmjbHEvX.jpeg"),
			First:   models.String("Brian"),
			Last:    models.String("Lee"),
			Twitter: models.String("@brian_dlee"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/f83b-400o400o2-Pyw3chmeHMxGsNoj3nQmWU.jpg"),
			First:   models.String("Sean"),
			Last:    models.String("McQuaid"),
			Twitter: models.String("@SeanMcQuaidCode"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/a9fc-400o400o2-JHBnWZRoxp7QX74Hdac7AZ.jpg"),
			First:   models.String("Shane"),
			Last:    models.String("Walker"),
			Twitter: models.String("@swalker326"),
		},
		{
			Avatar:  models.String("https://sessionize.com/image/6644-400o400o2-aHnGHb5Pdu3D32MbfrnQbj.jpg"),
			First:   models.String("Jon"),
			Last:    models.String("Jensen"),
			Twitter: models.String("@jenseng"),
		},
	}
}
