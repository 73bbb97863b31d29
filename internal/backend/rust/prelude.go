package rust

// prelude is appended to every generated main.rs. It implements the
// fixed-width storage model: Num<W> keeps an unsigned magnitude modulo
// 10^W, text items are padded with '0' on the left and keep their W
// rightmost characters, and the numeric reading of text keeps its last
// 36 digits.
const prelude = `mod pic {
    use std::fmt;
    use std::ops::{AddAssign, MulAssign, SubAssign};

    const TEXT_DIGITS: u32 = 36;
    const TEXT_MODULUS: u128 = 10u128.pow(TEXT_DIGITS);

    pub trait Operand {
        fn value(&self) -> i128;
    }

    impl Operand for i128 {
        fn value(&self) -> i128 {
            *self
        }
    }

    impl Operand for str {
        fn value(&self) -> i128 {
            digits(self)
        }
    }

    impl Operand for String {
        fn value(&self) -> i128 {
            digits(self)
        }
    }

    pub fn digits(s: &str) -> i128 {
        let m = TEXT_MODULUS as i128;
        s.bytes()
            .filter(u8::is_ascii_digit)
            .fold(0, |v, c| (v * 10 + i128::from(c - b'0')) % m)
    }

    fn add_mod(a: i128, b: i128, m: u128) -> u128 {
        (a + b).unsigned_abs() % m
    }

    fn sub_mod(a: i128, b: i128, m: u128) -> u128 {
        (a - b).unsigned_abs() % m
    }

    fn mul_mod(a: i128, b: i128, m: u128) -> u128 {
        let mut a = a.unsigned_abs() % m;
        let mut b = b.unsigned_abs() % m;
        let mut r = 0u128;
        while b > 0 {
            if b & 1 == 1 {
                r = (r + a) % m;
            }
            a = (a + a) % m;
            b >>= 1;
        }
        r
    }

    pub fn add(a: i128, b: i128) -> u128 {
        add_mod(a, b, TEXT_MODULUS)
    }

    pub fn sub(a: i128, b: i128) -> u128 {
        sub_mod(a, b, TEXT_MODULUS)
    }

    pub fn mul(a: i128, b: i128) -> u128 {
        mul_mod(a, b, TEXT_MODULUS)
    }

    pub fn alnum<const W: usize>(v: &dyn fmt::Display) -> String {
        let s = v.to_string();
        let n = s.chars().count();
        if n >= W {
            return s.chars().skip(n - W).collect();
        }
        let mut out = "0".repeat(W - n);
        out.push_str(&s);
        out
    }

    #[derive(Clone, Copy, Debug, PartialEq, Eq)]
    pub struct Num<const W: usize>(u128);

    impl<const W: usize> Num<W> {
        const MODULUS: u128 = 10u128.pow(W as u32);

        pub fn new(v: i128) -> Self {
            Num(v.unsigned_abs() % Self::MODULUS)
        }
    }

    impl<const W: usize> Operand for Num<W> {
        fn value(&self) -> i128 {
            self.0 as i128
        }
    }

    impl<const W: usize> fmt::Display for Num<W> {
        fn fmt(&self, f: &mut fmt::Formatter<'_>) -> fmt::Result {
            write!(f, "{:0w$}", self.0, w = W)
        }
    }

    macro_rules! num_op {
        ($tr:ident, $method:ident, $f:ident) => {
            impl<const W: usize> $tr<i128> for Num<W> {
                fn $method(&mut self, rhs: i128) {
                    self.0 = $f(self.value(), rhs, Self::MODULUS);
                }
            }

            impl<const W: usize, const V: usize> $tr<&Num<V>> for Num<W> {
                fn $method(&mut self, rhs: &Num<V>) {
                    self.0 = $f(self.value(), rhs.value(), Self::MODULUS);
                }
            }

            impl<const W: usize> $tr<&String> for Num<W> {
                fn $method(&mut self, rhs: &String) {
                    self.0 = $f(self.value(), rhs.value(), Self::MODULUS);
                }
            }
        };
    }

    num_op!(AddAssign, add_assign, add_mod);
    num_op!(SubAssign, sub_assign, sub_mod);
    num_op!(MulAssign, mul_assign, mul_mod);
}
`
